package chart

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/ganttsh/ganttsh/pkg/axis"
	"github.com/ganttsh/ganttsh/pkg/cursor"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const markerLabelPrefix = "تاریخ: "

var markerColor = color.RGBA{R: 0xff, A: 0xff}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Contains(x, y float64) bool {
	return r.containsX(x) && y >= r.Top && y <= r.Bottom
}

func (r Rect) containsX(x float64) bool {
	return x >= r.Left && x <= r.Right
}

// Row is the drawn bar of one task, in pixels.
type Row struct {
	TaskId uuid.UUID
	Name   string
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Figure is a rendered chart. It is never modified after Render returns, so it
// may be shared between goroutines.
type Figure struct {
	Plan   axis.Plan
	Rows   []Row
	Width  int
	Height int
	Area   Rect

	vmin, vmax axis.Coordinate
	opts       Options
	base       image.Image
}

// AxisToPixel returns the horizontal pixel position of x.
func (f *Figure) AxisToPixel(x axis.Coordinate) float64 {
	return f.Area.Left + float64(x-f.vmin)/float64(f.vmax-f.vmin)*f.Area.Width()
}

// PixelToAxis maps a pixel to the axis. It reports false outside the plot area.
func (f *Figure) PixelToAxis(px, py float64) (axis.Coordinate, bool) {
	if !f.Area.Contains(px, py) {
		return 0, false
	}
	return f.vmin + axis.Coordinate((px-f.Area.Left)/f.Area.Width())*(f.vmax-f.vmin), true
}

// InView reports whether x lies within the visible part of the axis.
func (f *Figure) InView(x axis.Coordinate) bool {
	return x >= f.vmin && x <= f.vmax
}

// Snapshot returns the chart with the marker drawn over it. An idle marker
// leaves the chart as rendered.
func (f *Figure) Snapshot(marker cursor.Snapshot) image.Image {
	if marker.State == cursor.Idle {
		return f.base
	}

	dc := gg.NewContextForImage(f.base)
	x := f.AxisToPixel(marker.Position.X)
	scale := f.opts.DPI / 72

	dc.SetColor(markerColor)
	dc.SetLineWidth(scale)
	dc.SetDash(4*scale, 2*scale)
	dc.DrawLine(x, f.Area.Top, x, f.Area.Bottom)
	dc.Stroke()
	dc.SetDash()

	if f.opts.FontPath != "" {
		if err := dc.LoadFontFace(f.opts.FontPath, f.opts.FontSize*scale); err != nil {
			log.Warnf("failed to load font %s for the date marker: %v", f.opts.FontPath, err)
		}
	}
	text := markerLabelPrefix + marker.Position.Label
	w, h := dc.MeasureString(text)
	pad := 4 * scale
	top := f.Area.Top + 0.02*f.Area.Height()

	dc.DrawRoundedRectangle(x-w/2-pad, top, w+2*pad, h+2*pad, pad)
	dc.SetRGBA(1, 1, 1, 0.8)
	dc.FillPreserve()
	dc.SetColor(color.Black)
	dc.SetLineWidth(scale / 2)
	dc.Stroke()
	dc.DrawStringAnchored(text, x, top+pad, 0.5, 1)

	return dc.Image()
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return gg.NewContextForImage(img).EncodePNG(w)
}
