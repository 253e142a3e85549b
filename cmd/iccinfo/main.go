package main

import (
	"fmt"
	"os"

	"github.com/kovidgoyal/cms/icc"
)

var _ = fmt.Print

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/iccinfo profile.icc")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		return
	}
	p, err := icc.Decode(data)
	if err != nil {
		return
	}
	h := p.Header
	fmt.Printf("Size:             %d bytes\n", h.ProfileSize)
	fmt.Printf("Version:          %d.%d.%d\n", h.Version.Major, h.Version.Minor, h.Version.Patch)
	fmt.Printf("Class:            %v\n", h.DeviceClass)
	fmt.Printf("Color space:      %v\n", h.DataColorSpace)
	fmt.Printf("PCS:              %v\n", h.ProfileConnectionSpace)
	fmt.Printf("Rendering intent: %v\n", h.RenderingIntent)
	if !h.CreatedAt.IsZero() {
		fmt.Printf("Created:          %v\n", h.CreatedAt)
	}
	if desc, derr := p.Description(); derr == nil {
		fmt.Printf("Description:      %s\n", desc)
	}
	if cprt, cerr := p.Copyright(); cerr == nil {
		fmt.Printf("Copyright:        %s\n", cprt)
	}
	fmt.Printf("White point:      %v\n", p.WhitePoint())
	fmt.Printf("Matrix shaper:    %v\n", p.IsMatrixShaper())
	if m, merr := p.ColorantMatrix(); merr == nil {
		fmt.Printf("Colorant matrix:\n")
		for _, row := range m {
			fmt.Printf("    %9.6f %9.6f %9.6f\n", row[0], row[1], row[2])
		}
	}
	fmt.Printf("Tags:            ")
	for _, sig := range p.TagTable.Signatures() {
		fmt.Printf(" %v", sig)
	}
	fmt.Println()
}
