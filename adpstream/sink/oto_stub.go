//go:build !oto

package sink

import "fmt"

// OtoDevice stub for when oto is not compiled in
type OtoDevice struct{}

func NewOtoDevice(rate int) (*OtoDevice, error) {
	return nil, fmt.Errorf("%w: oto - compile with -tags oto", ErrUnavailable)
}

func (d *OtoDevice) Queued() int                { return 0 }
func (d *OtoDevice) Queue(frames []int16) error { return ErrUnavailable }
func (d *OtoDevice) Close() error               { return nil }
