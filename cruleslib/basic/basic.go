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
package basic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/message"
	"golang.org/x/text/transform"
)

func PrintfWithTimeStamp(format string, arg ...any) {
	prefix := fmt.Sprintf("%v ", time.Now().Format("2006-01-02 15:04:05"))
	message := fmt.Sprintf(prefix+format, arg...)
	fmt.Println(message)
	glog.Info(message)
}

func GetPercentString(v1, v2 int) string {
	percent := (int)((v1 * 100) / v2)
	return fmt.Sprintf("%d%%", percent)
}

func FormatTimeDuration(d time.Duration) string {
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	if ms == 0 {
		return fmt.Sprintf("%ds", s)
	}
	ms = ms % time.Microsecond
	for ms%10 == 0 && ms != 0 {
		ms = ms / 10
	}
	return fmt.Sprintf("%d.%ds", s, ms)
}

// print checking process serialized, goroutine safe
type CheckingProcessPrinter struct {
	mutex             sync.Mutex
	startedAt         time.Time
	startedFiles      map[string]time.Time
	startFileTaskNum  int
	finishFileTaskNum int
	totalTaskNum      int
}

func NewCheckingProcessPrinter(totalTaskNum int) CheckingProcessPrinter {
	return CheckingProcessPrinter{
		totalTaskNum: totalTaskNum,
		startedFiles: make(map[string]time.Time),
		startedAt:    time.Now(),
	}
}

// Called before a file starts checking
func (c *CheckingProcessPrinter) StartFileTask(path string, printer *message.Printer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.startFileTaskNum++
	PrintfWithTimeStamp(printer.Sprintf("Start analyzing %s (%v/%v)", path, c.startFileTaskNum, c.totalTaskNum))
	c.startedFiles[path] = time.Now()
}

// Called after a file finished checking
func (c *CheckingProcessPrinter) FinishFileTask(path string, printer *message.Printer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.finishFileTaskNum++
	elapsed := ""
	if startedAt, ok := c.startedFiles[path]; ok {
		elapsed = " " + printer.Sprintf("in %s", FormatTimeDuration(time.Since(startedAt)))
		delete(c.startedFiles, path)
	}
	PrintfWithTimeStamp(printer.Sprintf("Finished analyzing %s (%v/%v)%s", path, c.finishFileTaskNum, c.totalTaskNum, elapsed))
}

func (c *CheckingProcessPrinter) GetPercentString() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.totalTaskNum == 0 {
		return "100%"
	}
	return GetPercentString(c.finishFileTaskNum, c.totalTaskNum)
}

func (c *CheckingProcessPrinter) GetStartedAt() time.Time {
	return c.startedAt
}

func convertCharset(b []byte, charset string) string {
	// best effort: fall back to treating the input as UTF-8 whenever the
	// charset cannot be resolved or decoded
	byteReader := bytes.NewReader(b)
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil || e == nil {
		glog.Warning("unknown charset, the content is considered as UTF-8 by default")
		return string(b)
	}
	reader := transform.NewReader(byteReader, e.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		glog.Warning("io.ReadAll err, the content is considered as UTF-8 by default")
		return string(b)
	}
	return string(decoded)
}

// GetCodeSnippet returns the reported line plus two lines of context above
// and below, with the reported line marked.
func GetCodeSnippet(path string, lineNumber int32, charset string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lower := lineNumber - 2
	upper := lineNumber + 2
	var lineCount int32 = 0
	var output string = ""
	for scanner.Scan() {
		lineCount++
		if lineCount < lower {
			continue
		} else if lineCount > upper {
			break
		}
		var text string
		if charset == "utf8" {
			text = scanner.Text()
		} else {
			text = convertCharset(scanner.Bytes(), charset)
		}
		if lineCount == lineNumber {
			output = output + fmt.Sprintf("> %d| %s\n", lineCount, text)
		} else {
			output = output + fmt.Sprintf("%d| %s\n", lineCount, text)
		}
	}
	if err = scanner.Err(); err != nil {
		return "", err
	}
	return output, err
}
