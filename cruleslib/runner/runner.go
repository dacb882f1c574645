/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package runner

import (
	"errors"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/cruleslib/basic"
	"naive.systems/idiomcheck/cruleslib/i18n"
)

// The task for Runner to run in parallels. Analyze usually reads and
// parses the file, then runs the engine over it.
type FileTask struct {
	Id      int
	Path    string
	Analyze func(path string) (*report.Report, error)
}

type fileResult struct {
	id     int
	path   string
	report *report.Report
	err    error
}

// A goroutine workgroup to analyze files in parallel. Every worker runs
// with its own collector inside Analyze; reports are merged only at the
// join point, with one final sort, so workers never contend on a lock.
type ParaFileRunner struct {
	showProgress   bool
	workerWg       sync.WaitGroup
	collectorWg    sync.WaitGroup
	jobs_chan      chan FileTask
	results_chan   chan fileResult
	sigs_exiting   chan bool
	reports        []*report.Report
	errors         []error
	processPrinter basic.CheckingProcessPrinter
}

func (pr *ParaFileRunner) worker(jobs <-chan FileTask, results chan<- fileResult, printer *message.Printer) {
	for j := range jobs {
		if pr.showProgress {
			pr.processPrinter.StartFileTask(j.Path, printer)
		}
		func() {
			defer func() {
				// recover from possible panic; a panicked file contributes
				// nothing to the merged report
				if r := recover(); r != nil {
					glog.Error("Recovered in analyze: ", r, string(debug.Stack()))
					results <- fileResult{id: j.Id, err: errors.New("panic in analyze file"), report: nil, path: j.Path}
					if pr.showProgress {
						pr.processPrinter.FinishFileTask(j.Path, printer)
					}
				}
			}()
			rep, err := j.Analyze(j.Path)
			results <- fileResult{id: j.Id, err: err, report: rep, path: j.Path}
			if pr.showProgress {
				pr.processPrinter.FinishFileTask(j.Path, printer)
			}
		}()
	}
	pr.workerWg.Done()
}

// Create a new file runner and results collectors.
func NewParaFileRunner(numWorkers int32, taskNums int, showProgress bool, lang string) *ParaFileRunner {
	printer := i18n.GetPrinter(lang)
	if numWorkers == 0 {
		numWorkers = int32(runtime.NumCPU())
		if showProgress {
			basic.PrintfWithTimeStamp(printer.Sprintf("Use %d CPU(s)", numWorkers))
		}
	}
	paraRunner := &ParaFileRunner{
		showProgress:   showProgress,
		jobs_chan:      make(chan FileTask, numWorkers),
		results_chan:   make(chan fileResult, numWorkers),
		sigs_exiting:   make(chan bool, 1),
		errors:         make([]error, taskNums),
		processPrinter: basic.NewCheckingProcessPrinter(taskNums),
	}
	for w := 0; w < int(numWorkers); w++ {
		paraRunner.workerWg.Add(1)
		go paraRunner.worker(paraRunner.jobs_chan, paraRunner.results_chan, printer)
	}

	sigs := make(chan os.Signal, 1)
	// if a signal is received, notify the loop to stop sending new workers
	signal.Notify(sigs, syscall.SIGINT)
	// collect results
	paraRunner.collectorWg.Add(1)
	go func() {
		for job_result := range paraRunner.results_chan {
			select {
			case <-sigs:
				// if received a SIGINT, stop collector and analyze file loop
				if paraRunner.showProgress {
					basic.PrintfWithTimeStamp("Ctrl C Pressed. Stop analysis")
				}
				paraRunner.sigs_exiting <- true
				paraRunner.collectorWg.Done()
				return
			default:
			}
			if job_result.err == nil {
				paraRunner.reports = append(paraRunner.reports, job_result.report)
			} else {
				glog.Errorf("Analyze %v got error %v", job_result.path, job_result.err)
			}
			paraRunner.errors[job_result.id] = job_result.err
		}
		paraRunner.collectorWg.Done()
	}()
	return paraRunner
}

// check for the SIGINT exiting signal
// If the exiting signal is received, it will return the merged report and
// errors collected so far. Otherwise it returns nil for both.
func (pr *ParaFileRunner) CheckSignalExiting() (results *report.Report, errors []error) {
	select {
	case <-pr.sigs_exiting:
		// close the jobs_chan to let worker end
		close(pr.jobs_chan)
		pr.collectorWg.Wait()
		return report.Merge(pr.reports...), pr.errors
	default:
		return nil, nil
	}
}

// Add a task to the runner and start analyzing the file.
func (pr *ParaFileRunner) AddTask(task FileTask) {
	pr.jobs_chan <- task
}

// Wait until all workers and collectors are finished, then merge the
// per-file reports into one with a single final sort.
func (pr *ParaFileRunner) CollectResultsAndErrors() (results *report.Report, errors []error) {
	go func() {
		pr.workerWg.Wait()
		close(pr.results_chan)
	}()
	close(pr.jobs_chan)
	pr.collectorWg.Wait()
	return report.Merge(pr.reports...), pr.errors
}
