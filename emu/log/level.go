package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// Level mirrors logrus severity ordering: the lower the value, the more
// severe the event.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func init() {
	// Module masks are the gate, logrus itself always lets entries through.
	logrus.SetLevel(logrus.DebugLevel)
}

// A Contexter adds fields to every log entry while it is registered. The
// simulation clock registers one so that entries carry the current tick.
type Contexter interface {
	AddLogContext(e *EntryZ)
}

var contexts []Contexter

func AddContext(c Contexter) {
	contexts = append(contexts, c)
}

func RemoveContext(c Contexter) {
	for i := range contexts {
		if contexts[i] == c {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}
