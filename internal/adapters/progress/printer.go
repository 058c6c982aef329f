package progress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.trai.ch/depcache/internal/ui/output"
	"go.trai.ch/depcache/internal/ui/style"
)

var _ progrock.Writer = (*Printer)(nil)

// Printer is a progrock.Writer that prints one line per completed vertex, followed by the
// log output the vertex collected while it ran.
type Printer struct {
	mu   sync.Mutex
	w    io.Writer
	out  *termenv.Output
	logs map[string]*bytes.Buffer
	done map[string]bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		logs: make(map[string]*bytes.Buffer),
		done: make(map[string]bool),
	}
	p.SetOutput(w)
	return p
}

// SetOutput redirects the printer. io.Discard silences it.
func (p *Printer) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w = w
	p.out = output.New(w)
}

// WriteStatus implements progrock.Writer.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, l := range update.Logs {
		buf, ok := p.logs[l.Vertex]
		if !ok {
			buf = new(bytes.Buffer)
			p.logs[l.Vertex] = buf
		}
		buf.Write(l.Data)
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			// A completed vertex seen again without a completion time was restarted.
			if p.done[v.Id] {
				delete(p.done, v.Id)
				delete(p.logs, v.Id)
			}
			continue
		}
		if p.done[v.Id] {
			continue
		}
		p.done[v.Id] = true
		if err := p.printVertex(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printVertex(v *progrock.Vertex) error {
	var err error
	switch {
	case v.Error != nil:
		_, err = fmt.Fprintf(p.w, "%s %s: %s\n", output.Paint(p.out, style.Cross, style.Red), v.Name, *v.Error)
	case v.Canceled:
		_, err = fmt.Fprintf(p.w, "%s %s canceled\n", output.Paint(p.out, style.Warning, style.Yellow), v.Name)
	case v.Cached:
		_, err = fmt.Fprintf(p.w, "%s %s\n", output.Paint(p.out, style.Circle, style.Slate), v.Name)
	default:
		_, err = fmt.Fprintf(p.w, "%s %s\n", output.Paint(p.out, style.Check, style.Green), v.Name)
	}
	if err != nil {
		return err
	}

	buf, ok := p.logs[v.Id]
	delete(p.logs, v.Id)
	if !ok || buf.Len() == 0 {
		return nil
	}
	for _, line := range bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n")) {
		if _, err := fmt.Fprintf(p.w, "    %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (p *Printer) Close() error {
	return nil
}
