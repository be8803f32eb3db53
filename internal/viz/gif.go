package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/pkg/errors"
)

const (
	gifCharW = 8
	gifCharH = 16
)

var gifBackground = color.RGBA{0x0a, 0x0a, 0x0a, 0xff}

// WriteGIF encodes frames as a looping animation with the given per-frame
// delay in hundredths of a second.
func WriteGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return errors.New("viz: no frames recorded")
	}
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "viz: create gif")
	}
	defer f.Close()
	return errors.Wrap(gif.EncodeAll(f, &anim), "viz: encode gif")
}
