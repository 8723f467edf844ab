package vaultclient

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progress рисует индикатор передачи поверх progressbar. nil-значение ничего не рисует.
type progress struct {
	out  io.Writer
	bar  *progressbar.ProgressBar
	done bool
}

// newProgress возвращает nil, если вывод прогресса отключён.
// Неизвестный размер (total <= 0) рисуется спиннером.
func newProgress(out io.Writer, description string, total int64) *progress {
	if out == nil {
		return nil
	}
	if total <= 0 {
		total = -1
	}

	return &progress{
		out: out,
		bar: progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(32),
			progressbar.OptionThrottle(120*time.Millisecond),
			progressbar.OptionSetRenderBlankState(true),
		),
	}
}

func (p *progress) Write(b []byte) (int, error) {
	if p == nil {
		return len(b), nil
	}
	return p.bar.Write(b)
}

func (p *progress) Finish() {
	if p == nil || p.done {
		return
	}
	p.done = true
	_ = p.bar.Finish()
	fmt.Fprintln(p.out, " ✓")
}

func (p *progress) Fail(err error) {
	if p == nil || p.done {
		return
	}
	p.done = true
	_ = p.bar.Exit()
	fmt.Fprintf(p.out, " ✗ %v\n", err)
}

// wrap считает прочитанные из rc байты; EOF или Close завершают индикатор.
func (p *progress) wrap(rc io.ReadCloser) io.ReadCloser {
	if p == nil || rc == nil {
		return rc
	}
	return &progressReadCloser{inner: rc, p: p}
}

type progressReadCloser struct {
	inner io.ReadCloser
	p     *progress
}

func (r *progressReadCloser) Read(b []byte) (int, error) {
	n, err := r.inner.Read(b)
	if n > 0 {
		_, _ = r.p.Write(b[:n])
	}
	switch {
	case err == io.EOF:
		r.p.Finish()
	case err != nil:
		r.p.Fail(err)
	}
	return n, err
}

func (r *progressReadCloser) Close() error {
	err := r.inner.Close()
	if err != nil {
		r.p.Fail(err)
	} else {
		r.p.Finish()
	}
	return err
}
