package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"unicode/utf8"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

type drawnText struct {
	Page int
	X, Y float64
	S    string
	Font Font
}

type drawnRect struct {
	Page  int
	Box   Box
	Style RectStyle
}

type drawnImage struct {
	Page int
	Box  Box
}

// recordingCanvas records every drawing call. Every rune is half the font
// size wide, which keeps measurements predictable in tests.
type recordingCanvas struct {
	pages    int
	texts    []drawnText
	rects    []drawnRect
	images   []drawnImage
	imageErr error
}

func (c *recordingCanvas) StringWidth(s string, f Font) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size * 0.5 * ptToMM
}

func (c *recordingCanvas) AddPage() { c.pages++ }

func (c *recordingCanvas) PageCount() int { return c.pages }

func (c *recordingCanvas) Text(x, y float64, s string, f Font) {
	if s == "" {
		return
	}
	c.texts = append(c.texts, drawnText{Page: c.pages, X: x, Y: y, S: s, Font: f})
}

func (c *recordingCanvas) Rect(b Box, st RectStyle) {
	c.rects = append(c.rects, drawnRect{Page: c.pages, Box: b, Style: st})
}

func (c *recordingCanvas) Image(img []byte, b Box) error {
	if c.imageErr != nil {
		return c.imageErr
	}
	c.images = append(c.images, drawnImage{Page: c.pages, Box: b})
	return nil
}

// find returns the first drawn text equal to s.
func (c *recordingCanvas) find(s string) (drawnText, bool) {
	for _, t := range c.texts {
		if t.S == s {
			return t, true
		}
	}
	return drawnText{}, false
}

// staticLogo always returns the same bytes and counts calls.
type staticLogo struct {
	mu    sync.Mutex
	calls int
	b     []byte
	err   error
}

func (l *staticLogo) Logo(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.b, l.err
}

func (l *staticLogo) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// blockingLogo never answers until release is closed and ignores ctx.
type blockingLogo struct {
	release chan struct{}
}

func (l blockingLogo) Logo(ctx context.Context) ([]byte, error) {
	<-l.release
	return nil, errors.New("released")
}
