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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/cruleslib/basic"
	"naive.systems/idiomcheck/cruleslib/checkrule"
	"naive.systems/idiomcheck/cruleslib/filter"
	"naive.systems/idiomcheck/cruleslib/i18n"
	"naive.systems/idiomcheck/cruleslib/options"
	"naive.systems/idiomcheck/cruleslib/runner"
	"naive.systems/idiomcheck/cruleslib/stats"
	"naive.systems/idiomcheck/frontend/treesitter"
	"naive.systems/idiomcheck/idioms"
)

type arrayFlags []string

func (i *arrayFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

var (
	srcdir        = flag.String("srcdir", ".", "the directory of the source files to check")
	resultsDir    = flag.String("results_dir", "", "the directory to store result metadata, disabled when empty")
	configPath    = flag.String("config", "", "path of the check configuration YAML file")
	excludeFlag   = flag.String("exclude", "", "comma-separated rule ids to skip")
	numWorkers    = flag.Int("num_workers", 0, "number of parallel analysis workers, 0 means NumCPU")
	lang          = flag.String("lang", "en", "language of printed messages (en or zh)")
	checkProgress = flag.Bool("check_progress", false, "print checking progress")
	sourceCharset = flag.String("source_charset", "utf8", "charset of the checked source files")
	listRules     = flag.Bool("list_rules", false, "list the rule catalog and exit")
)

var ignoreDirPatterns = arrayFlags{}

func analyzeFile(eng *engine.Engine, engineOpts *engine.Options) func(path string) (*report.Report, error) {
	return func(path string) (*report.Report, error) {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		// tree-sitter parsers are not goroutine-safe, so each analysis
		// gets its own
		tree, err := treesitter.NewParser().Parse(context.Background(), path, source)
		if err != nil {
			return nil, err
		}
		return eng.Analyze(tree, engineOpts)
	}
}

func printFindings(r *report.Report, printer *message.Printer, charset string) {
	for _, f := range r.Findings {
		fmt.Printf("%s:%d:%d: %s [%s %s]\n",
			f.Span.File, f.Span.StartLine, f.Span.StartCol, f.Message, f.Severity, f.RuleId)
		snippet, err := basic.GetCodeSnippet(f.Span.File, f.Span.StartLine, charset)
		if err != nil {
			glog.Warningf("cannot read code snippet of %s: %v", f.Span.File, err)
			continue
		}
		fmt.Println(snippet)
	}
	counts := r.Counts()
	basic.PrintfWithTimeStamp(printer.Sprintf("Reported %d finding(s)", counts.Total))
}

func main() {
	flag.Var(&ignoreDirPatterns, "ignore_dir", "double-star pattern of paths to skip, repeatable")
	flag.Parse()
	defer glog.Flush()

	if *listRules {
		for _, rule := range idioms.MustCatalog(nil).Rules() {
			fmt.Printf("%s\t%s\t%s\n", rule.Id, rule.DefaultSeverity, rule.Title)
		}
		return
	}

	var config *checkrule.CheckConfig
	if *configPath != "" {
		var err error
		config, err = checkrule.ParseConfigFile(*configPath)
		if err != nil {
			glog.Exitf("cannot load config %s: %v", *configPath, err)
		}
	}
	envOpts := &options.EnvOptions{
		ResultsDir:        *resultsDir,
		NumWorkers:        int32(*numWorkers),
		CheckProgress:     *checkProgress,
		Lang:              *lang,
		IgnoreDirPatterns: ignoreDirPatterns,
	}
	checkOpts := options.MakeCheckOptions(config, envOpts, *excludeFlag)
	printer := i18n.GetPrinter(*lang)
	startedAt := time.Now()

	if *resultsDir != "" {
		stats.WriteProgress(*resultsDir, stats.LS, "0%", startedAt)
	}
	files, err := filter.ListSourceFiles(*srcdir, ignoreDirPatterns)
	if err != nil {
		glog.Exitf("cannot list source files under %s: %v", *srcdir, err)
	}
	if *checkProgress {
		basic.PrintfWithTimeStamp(printer.Sprintf("Found %d source file(s)", len(files)))
	}

	catalog := idioms.MustCatalog(config)
	eng := engine.New(catalog)
	engineOpts := &engine.Options{
		Exclude:           checkOpts.Exclude,
		SeverityOverrides: checkOpts.SeverityOverrides,
	}

	if *resultsDir != "" {
		stats.WriteProgress(*resultsDir, stats.AC, "0%", startedAt)
	}
	paraRunner := runner.NewParaFileRunner(envOpts.NumWorkers, len(files), *checkProgress, *lang)
	interrupted := false
	var results *report.Report
	var errors []error
	for i, file := range files {
		results, errors = paraRunner.CheckSignalExiting()
		if results != nil {
			interrupted = true
			break
		}
		paraRunner.AddTask(runner.FileTask{
			Id:      i,
			Path:    file,
			Analyze: analyzeFile(eng, engineOpts),
		})
	}
	if !interrupted {
		results, errors = paraRunner.CollectResultsAndErrors()
	}
	failed := 0
	for _, err := range errors {
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		glog.Errorf("%d file(s) failed to analyze", failed)
	}

	results = filter.ProcessIgnoreDir(results, ignoreDirPatterns)
	report.AddIds(results)
	printFindings(results, printer, *sourceCharset)

	if *resultsDir != "" {
		stats.CountSeverityAndWrite(results, *resultsDir)
		loc, err := stats.CountLinesUnderDir([]string{*srcdir}, []string{"C++", "C++ Header"}, ignoreDirPatterns)
		if err == nil {
			stats.WriteLOC(*resultsDir, loc)
		}
		stats.WriteProgress(*resultsDir, stats.END, "100%", startedAt)
	}
	if *checkProgress {
		basic.PrintfWithTimeStamp(printer.Sprintf("Analysis finished in %s", basic.FormatTimeDuration(time.Since(startedAt))))
	}
}
