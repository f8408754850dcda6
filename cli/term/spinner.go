package term

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

const withoutMessageMinDuration = 350 * time.Millisecond

var s = spinner.New(spinner.CharSets[33], 100*time.Millisecond)
var startedAt time.Time
var active bool

func StartSpinner(msg string) {
	if active {
		s.Stop()
	}

	startedAt = time.Now()
	s.Prefix = msg + " "
	s.Start()
	active = true
}

func StopSpinner() {
	if !active {
		return
	}

	// keep the spinner visible long enough to register
	elapsed := time.Since(startedAt)
	if elapsed < withoutMessageMinDuration {
		time.Sleep(withoutMessageMinDuration - elapsed)
	}

	s.Stop()
	ClearCurrentLine()
	active = false
}

func ClearCurrentLine() {
	fmt.Print("\r\033[K")
}
