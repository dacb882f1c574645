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

package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"

	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/atomic"
	"naive.systems/idiomcheck/cruleslib/filter"
)

// analysis stages
const (
	LS  int = iota // Source file listing
	PS             // Parsing
	AC             // Analysis check
	END
)

type Progress struct {
	StageID   int       `json:"stage_id"`
	DoneRatio string    `json:"done_ratio"`
	StartedAt time.Time `json:"started_at"`
}

type SeverityCount struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
	Unknown int `json:"unknown"`
}

func WriteLOC(resultDir string, linesCounter int) {
	path := filepath.Join(resultDir, "loc.nsa_metadata")
	err := atomic.Write(path, []byte(strconv.Itoa(linesCounter)))
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}

func WriteProgress(resultDir string, stageID int, doneRatio string, startedAt time.Time) {
	// skip writing it if resultDir does not exist
	_, err := os.Stat(resultDir)
	if os.IsNotExist(err) {
		glog.Warningf("result dir %s does not exist", resultDir)
		return
	}
	path := filepath.Join(resultDir, "progress.nsa_metadata")
	progress, err := json.Marshal(Progress{StageID: stageID, DoneRatio: doneRatio, StartedAt: startedAt})
	if err != nil {
		glog.Errorf("failed to marshal json stageID %d and doneRatio %s: %v", stageID, doneRatio, err)
		return
	}
	err = atomic.Write(path, progress)
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}

func AccumulateBySeverity(cnt *SeverityCount, severity report.Severity, findingId string) {
	switch severity {
	case report.SeverityError:
		cnt.Error++
	case report.SeverityWarning:
		cnt.Warning++
	case report.SeverityInfo:
		cnt.Info++
	case report.SeverityUnknown:
		cnt.Unknown++
	default:
		glog.Warningf("undefined severity of finding %s", findingId)
	}
}

func GetSeverityCountBytes(r *report.Report) ([]byte, error) {
	var cnt SeverityCount
	for _, f := range r.Findings {
		AccumulateBySeverity(&cnt, f.Severity, f.Id)
	}
	statsBytes, err := json.Marshal(cnt)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %v", err)
	}
	return statsBytes, nil
}

func CountSeverityAndWrite(r *report.Report, resultDir string) {
	statsBytes, err := GetSeverityCountBytes(r)
	if err != nil {
		glog.Errorf("failed to get severity count bytes: %v", err)
	}
	statsFile := filepath.Join(resultDir, "severity_stats.nsa_metadata")
	err = atomic.Write(statsFile, statsBytes)
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", statsFile, err)
	}
}

// CountLinesUnderDir counts code lines of the checked languages below the
// working dirs, skipping ignored paths.
func CountLinesUnderDir(workingDirs []string, countLangs []string, ignoreDirPatterns []string) (int, error) {
	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range countLangs {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(workingDirs)
	if err != nil {
		glog.Errorf("gocloc fail: %v", err)
		return 0, err
	}
	sum := 0
	for _, file := range result.Files {
		matched, err := filter.MatchIgnoreDirPatterns(ignoreDirPatterns, file.Name)
		if err != nil {
			glog.Error(err)
			continue
		}
		if matched {
			continue
		}
		sum += int(file.Code)
	}
	return sum, nil
}
