// iccapply converts an image from its embedded ICC profile to sRGB and
// writes the result as PNG (or APNG for animated input).
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/kettek/apng"
	"github.com/kovidgoyal/cms"
	"github.com/kovidgoyal/cms/convert"
	"github.com/kovidgoyal/cms/icc"
	"github.com/kovidgoyal/cms/meta"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var _ = fmt.Print

func decode_frames(data []byte, ext string) (frames []image.Image, anim *apng.APNG, err error) {
	switch ext {
	case ".png", ".apng":
		var a apng.APNG
		if a, err = apng.DecodeAll(bytes.NewReader(data)); err != nil {
			return
		}
		if len(a.Frames) > 1 {
			anim = &a
		}
		for _, f := range a.Frames {
			frames = append(frames, f.Image)
		}
	case ".jpg", ".jpeg":
		var img image.Image
		if img, err = jpeg.Decode(bytes.NewReader(data)); err != nil {
			return
		}
		frames = append(frames, img)
	case ".tif", ".tiff":
		var img image.Image
		if img, err = tiff.Decode(bytes.NewReader(data)); err != nil {
			return
		}
		frames = append(frames, img)
	case ".webp":
		var img image.Image
		if img, err = webp.Decode(bytes.NewReader(data)); err != nil {
			return
		}
		frames = append(frames, img)
	default:
		err = fmt.Errorf("unsupported image format: %s", ext)
	}
	return
}

func run(input, output string) (err error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return
	}
	src, err := meta.ExtractProfile(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to read embedded profile: %w", err)
	}
	if src == nil {
		fmt.Println("no embedded ICC profile, assuming sRGB")
		src = icc.SRGB()
	}
	tr, err := cms.NewTransform(src, icc.SRGB(), cms.DefaultContext())
	if err != nil {
		return
	}
	frames, anim, err := decode_frames(data, strings.ToLower(filepath.Ext(input)))
	if err != nil {
		return
	}
	for i, f := range frames {
		if frames[i], err = convert.Image(tr, f); err != nil {
			return
		}
	}
	out, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()
	if anim != nil {
		for i := range anim.Frames {
			anim.Frames[i].Image = frames[i]
		}
		return apng.Encode(out, *anim)
	}
	return png.Encode(out, frames[0])
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/iccapply input-file [output-file]")
		os.Exit(1)
	}
	input := os.Args[1]
	output := input + ".srgb.png"
	if len(os.Args) == 3 {
		output = os.Args[2]
	}
	if err = run(input, output); err == nil {
		fmt.Println("saved to:", output)
	}
}
