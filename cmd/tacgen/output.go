package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"
)

// output is where generated text goes. A named file is created before
// generation starts and is removed again if the process exits through
// atexit before commit.
type output struct {
	w       io.Writer
	file    *os.File
	cleanup atexit.HandlerID
}

func openOutput(path string, stdout io.Writer) (*output, error) {
	if path == "" {
		return &output{w: stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	o := &output{w: f, file: f}
	o.cleanup = atexit.Register(o.remove)
	return o, nil
}

func (o *output) name() string {
	if o.file == nil {
		return "stdout"
	}
	return o.file.Name()
}

func (o *output) remove() {
	o.file.Close()
	os.Remove(o.file.Name())
}

func (o *output) commit(data []byte) error {
	if _, err := o.w.Write(data); err != nil {
		if o.file != nil {
			o.discard()
		}
		return fmt.Errorf("write output: %w", err)
	}
	if o.file == nil {
		return nil
	}
	o.cleanup.Cancel()
	if err := o.file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// discard drops a named output file that will not be committed.
func (o *output) discard() {
	if o.file == nil {
		return
	}
	o.cleanup.Cancel()
	o.remove()
}
