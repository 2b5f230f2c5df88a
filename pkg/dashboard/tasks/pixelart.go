package tasks

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/maximthomas/taskboard/pkg/tempfile"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const (
	minSide  = 4
	maxSide  = 64
	minScale = 5
	maxScale = 50

	pixelArtFileName = "my_pixel_art.png"
)

type pixelArtProperties struct {
	DefaultWidth  int
	DefaultHeight int
	DefaultScale  int
}

// PixelArt renders a grid of random colors scaled up with nearest neighbour interpolation
type PixelArt struct {
	BaseTask
	props   pixelArtProperties
	newRand func() *rand.Rand
}

type pixelArtSize struct {
	width, height, scale int
}

func (p *PixelArt) Validate(sub *state.Submission) error {
	if err := p.BaseTask.Validate(sub); err != nil {
		return err
	}
	_, err := p.size(sub)
	return err
}

func (p *PixelArt) size(sub *state.Submission) (pixelArtSize, error) {
	var s pixelArtSize
	fields := []struct {
		name   string
		lo, hi int
		out    *int
	}{
		{"width", minSide, maxSide, &s.width},
		{"height", minSide, maxSide, &s.height},
		{"scale", minScale, maxScale, &s.scale},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(sub.Value(f.name))
		if err != nil || v < f.lo || v > f.hi {
			return s, p.invalid(sub, f.name, fmt.Sprintf("must be a number between %d and %d", f.lo, f.hi))
		}
		*f.out = v
	}
	return s, nil
}

func (p *PixelArt) Execute(_ context.Context, sub *state.Submission) (Result, error) {
	size, err := p.size(sub)
	if err != nil {
		return Result{}, err
	}
	img := generatePixelArt(size, p.newRand())

	data, err := tempfile.Create(p.fs, p.tempDir, "pixel-art-*.png", func(path string) error {
		f, err := p.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		if err = png.Encode(f, img); err != nil {
			_ = f.Close()
			return errors.Wrap(err, "error encoding png")
		}
		return f.Close()
	})
	if err != nil {
		return Result{}, taskerrors.NewExternalCallError("An error occurred", err)
	}
	return Result{
		Message: "Image generated! Use the attachment to download it.",
		Attachment: &callbacks.Attachment{
			Name:     pixelArtFileName,
			MimeType: "image/png",
			Data:     data,
		},
	}, nil
}

func generatePixelArt(size pixelArtSize, rnd *rand.Rand) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, size.width, size.height))
	for x := 0; x < size.width; x++ {
		for y := 0; y < size.height; y++ {
			src.SetRGBA(x, y, color.RGBA{
				R: uint8(rnd.IntN(256)),
				G: uint8(rnd.IntN(256)),
				B: uint8(rnd.IntN(256)),
				A: 0xff,
			})
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.width*size.scale, size.height*size.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func init() {
	RegisterTask("pixel-art", newPixelArt)
}

func newPixelArt(base BaseTask) (Task, error) {
	props := pixelArtProperties{DefaultWidth: 16, DefaultHeight: 16, DefaultScale: 20}
	if err := base.decodeProperties(&props); err != nil {
		return nil, err
	}
	rangeCallback := func(name, prompt string, value, lo, hi int) callbacks.Callback {
		return callbacks.Callback{
			Name:     name,
			Type:     callbacks.TypeRange,
			Prompt:   prompt,
			Value:    strconv.Itoa(value),
			Required: true,
			Properties: map[string]string{
				"min": strconv.Itoa(lo),
				"max": strconv.Itoa(hi),
			},
		}
	}
	base.callbacks = []callbacks.Callback{
		rangeCallback("width", "Image Width (pixels)", props.DefaultWidth, minSide, maxSide),
		rangeCallback("height", "Image Height (pixels)", props.DefaultHeight, minSide, maxSide),
		rangeCallback("scale", "Pixel Scale (zoom factor)", props.DefaultScale, minScale, maxScale),
	}
	base.invalidMessage = "Please choose a valid image size."
	return &PixelArt{
		BaseTask: base,
		props:    props,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}, nil
}
