// Package output renders a runner.Report. Renderers are pure: the same
// report always renders to the same bytes.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vertti/uismoke/pkg/runner"
)

// Renderer turns a report into a document.
type Renderer interface {
	Render(r *runner.Report) ([]byte, error)
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"text", "json", "html"}

// ForFormat returns the renderer for a format name.
// color only applies to text.
func ForFormat(name string, color bool) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return Text{Color: color}, nil
	case "json":
		return JSON{}, nil
	case "html":
		return HTML{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}

// Write renders r with rd and writes the result to w.
func Write(w io.Writer, rd Renderer, r *runner.Report) error {
	b, err := rd.Render(r)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
