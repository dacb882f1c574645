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

/*
This package should not import any packages of other analyzers to
avoid recursive import.
*/
package filter

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"

	"naive.systems/idiomcheck/analyzer/report"
)

var kCppSuffixs = []string{"cpp", "cc", "cxx", "c++", "hpp", "h", "hh"}

func IsCCFile(path string) bool {
	for _, suffix := range kCppSuffixs {
		if strings.HasSuffix(path, "."+suffix) {
			return true
		}
	}
	return false
}

func MatchIgnoreDirPatterns(ignoreDirPatterns []string, filePath string) (bool, error) {
	matched := false
	var err error
	for _, ignoreDirPattern := range ignoreDirPatterns {
		matched, err = doublestar.Match(ignoreDirPattern, filePath)
		if err != nil {
			return matched, fmt.Errorf("malformed ignore_dir pattern %s", ignoreDirPattern)
		}
		if matched {
			glog.Infof("Source file %s ignored due to pattern %s", filePath, ignoreDirPattern)
			break
		}
	}
	return matched, nil
}

// ListSourceFiles walks srcdir and returns every C++ file not excluded by
// the ignore patterns, in walk order (lexical, so stable).
func ListSourceFiles(srcdir string, ignoreDirPatterns []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(srcdir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsCCFile(path) {
			return nil
		}
		matched, err := MatchIgnoreDirPatterns(ignoreDirPatterns, path)
		if err != nil {
			return err
		}
		if !matched {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.WalkDir: %v", err)
	}
	return files, nil
}

// ProcessIgnoreDir drops findings whose path matches an ignore pattern.
// Findings from headers pulled in by a checked file can land there even
// when the directory itself was never listed.
func ProcessIgnoreDir(r *report.Report, ignoreDirPatterns []string) *report.Report {
	for _, ignoreDirPattern := range ignoreDirPatterns {
		newFindings := []*report.Finding{}
		for _, f := range r.Findings {
			matched, err := doublestar.Match(ignoreDirPattern, f.Span.File)
			if err != nil {
				glog.Error("malformed ignore_dir pattern ", ignoreDirPattern)
				newFindings = r.Findings
				break
			}
			if matched {
				glog.Infof("Finding in path %s ignored due to pattern %s", f.Span.File, ignoreDirPattern)
			} else {
				newFindings = append(newFindings, f)
			}
		}
		r.Findings = newFindings
	}
	return r
}
