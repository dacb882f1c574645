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

package options

import (
	"strings"

	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/cruleslib/checkrule"
)

// EnvOptions describe one invocation of the checker as a whole.
type EnvOptions struct {
	ResultsDir        string
	NumWorkers        int32
	CheckProgress     bool
	Lang              string
	IgnoreDirPatterns []string
}

// CheckOptions bundle everything a single analysis run needs.
type CheckOptions struct {
	EnvOption         *EnvOptions
	Config            *checkrule.CheckConfig
	Exclude           map[string]bool
	SeverityOverrides map[string]report.Severity
}

func MakeCheckOptions(config *checkrule.CheckConfig, envOpts *EnvOptions, excludeFlag string) CheckOptions {
	exclude := config.GetExcludeSet()
	for _, id := range strings.Split(excludeFlag, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			exclude[id] = true
		}
	}
	overrides := make(map[string]report.Severity)
	if config != nil {
		for id, name := range config.Severity {
			if s := report.ParseSeverity(name); s != report.SeverityUnknown {
				overrides[id] = s
			}
		}
	}
	return CheckOptions{
		EnvOption:         envOpts,
		Config:            config,
		Exclude:           exclude,
		SeverityOverrides: overrides,
	}
}
