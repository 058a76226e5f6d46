package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"time"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/ganttsh/ganttsh/pkg/axis"
	"github.com/ganttsh/ganttsh/pkg/jalali"
	"github.com/ganttsh/ganttsh/pkg/task"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
)

const (
	Title      = "نمودار گانت پروژه"
	AxisLabel  = "زمان"
	daysSuffix = "روز"

	barHeightRatio = 0.6
	barAlpha       = 0.8
)

// Margins around the plot area, in inches.
const (
	marginLeft          = 0.4
	marginRight         = 1.8
	marginTop           = 0.8
	marginBottom        = 1.0
	marginBottomRotated = 1.5
)

var ErrInvalidOptions = errors.New("invalid chart options")

// Options sets up a Renderer. Sizes are in inches, fonts in points.
type Options struct {
	WidthInches     float64
	RowHeightInches float64
	MinHeightInches float64
	DPI             float64
	// FontPath is a TrueType font able to render Persian text. Empty uses
	// the built-in face, which only covers ASCII.
	FontPath      string
	FontSize      float64
	TitleFontSize float64
}

func DefaultOptions() Options {
	return Options{
		WidthInches:     12,
		RowHeightInches: 0.6,
		MinHeightInches: 4,
		DPI:             100,
		FontSize:        12,
		TitleFontSize:   14,
	}
}

type Renderer struct {
	opts Options
}

// NewRenderer checks opts and, when a font is configured, that it can be loaded.
// Charts drawn without a Persian capable font lose every Persian label, so a
// missing or incomplete font is logged.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.WidthInches <= 0 || opts.RowHeightInches <= 0 || opts.MinHeightInches <= 0 || opts.DPI <= 0 {
		return nil, fmt.Errorf("%w: sizes and DPI must be positive", ErrInvalidOptions)
	}
	if opts.FontSize <= 0 || opts.TitleFontSize <= 0 {
		return nil, fmt.Errorf("%w: font sizes must be positive", ErrInvalidOptions)
	}
	if opts.WidthInches <= marginLeft+marginRight {
		return nil, fmt.Errorf("%w: width must exceed %.1f inches of margins", ErrInvalidOptions, marginLeft+marginRight)
	}
	if opts.MinHeightInches <= marginTop+marginBottomRotated {
		return nil, fmt.Errorf("%w: minimum height must exceed %.1f inches of margins", ErrInvalidOptions, marginTop+marginBottomRotated)
	}

	if opts.FontPath == "" {
		log.Warn("no chart font configured, Persian labels will be missing from rendered charts")
		return &Renderer{opts: opts}, nil
	}
	missing, err := missingGlyphs(opts.FontPath, persianText())
	if err != nil {
		return nil, fmt.Errorf("%w: cannot load font %s: %w", ErrInvalidOptions, opts.FontPath, err)
	}
	if len(missing) > 0 {
		log.Warnf("font %s has no glyphs for %q, Persian labels will be incomplete", opts.FontPath, string(missing))
	}
	return &Renderer{opts: opts}, nil
}

// persianText is every fixed Persian string a chart can contain.
func persianText() string {
	text := Title + AxisLabel + daysSuffix + markerLabelPrefix
	for month := 1; month <= 12; month++ {
		text += jalali.MonthName(month)
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		text += jalali.WeekdayName(day)
	}
	return text
}

// missingGlyphs returns the distinct runes of text the font at path cannot draw.
func missingGlyphs(path, text string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] || unicode.IsSpace(r) || unicode.Is(unicode.Cf, r) {
			continue
		}
		seen[r] = true
		if f.Index(r) == 0 {
			missing = append(missing, r)
		}
	}
	return missing, nil
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Render draws tasks as horizontal bars on the axis described by plan. The
// first task is the bottom row.
func (r *Renderer) Render(tasks []task.Task, plan axis.Plan) (*Figure, error) {
	if len(tasks) == 0 {
		return nil, task.ErrEmptyStore
	}

	heightInches := math.Max(r.opts.MinHeightInches, r.opts.RowHeightInches*float64(len(tasks)))
	width := int(math.Round(r.opts.WidthInches * r.opts.DPI))
	height := int(math.Round(heightInches * r.opts.DPI))

	bottom := marginBottom
	if plan.LabelRotation != 0 {
		bottom = marginBottomRotated
	}
	area := Rect{
		Left:   marginLeft * r.opts.DPI,
		Top:    marginTop * r.opts.DPI,
		Right:  float64(width) - marginRight*r.opts.DPI,
		Bottom: float64(height) - bottom*r.opts.DPI,
	}
	if area.Width() <= 0 || area.Height() <= 0 {
		return nil, fmt.Errorf("%w: figure too small for its margins", ErrInvalidOptions)
	}

	vmin, vmax := plan.ViewRange()
	f := &Figure{
		Plan:   plan,
		Width:  width,
		Height: height,
		Area:   area,
		vmin:   vmin,
		vmax:   vmax,
		opts:   r.opts,
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	rowHeight := area.Height() / float64(len(tasks))
	for i, t := range tasks {
		center := area.Bottom - (float64(i)+0.5)*rowHeight
		row := Row{
			TaskId: t.Id,
			Name:   t.Name,
			Left:   f.AxisToPixel(axis.CoordinateOf(t.Start)),
			Right:  f.AxisToPixel(axis.CoordinateOf(t.End) + 1),
			Top:    center - rowHeight*barHeightRatio/2,
			Bottom: center + rowHeight*barHeightRatio/2,
		}
		f.Rows = append(f.Rows, row)
		r.drawBar(dc, f, row, t)
	}

	r.drawAxis(dc, f)
	r.drawTitles(dc, f)

	f.base = dc.Image()
	return f, nil
}

func (r *Renderer) drawBar(dc *gg.Context, f *Figure, row Row, t task.Task) {
	c := t.Color.RGBA
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, barAlpha)
	dc.DrawRectangle(row.Left, row.Top, row.Right-row.Left, row.Bottom-row.Top)
	dc.FillPreserve()
	dc.SetColor(color.Black)
	dc.SetLineWidth(r.px(1))
	dc.Stroke()

	r.setFont(dc, r.opts.FontSize)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(strconv.Itoa(t.Duration)+" "+daysSuffix, (row.Left+row.Right)/2, (row.Top+row.Bottom)/2, 0.5, 0.5)
	dc.DrawStringAnchored(t.Name, f.Area.Right+r.px(6), (row.Top+row.Bottom)/2, 0, 0.5)
}

func (r *Renderer) drawAxis(dc *gg.Context, f *Figure) {
	area := f.Area
	dc.SetColor(color.Black)
	dc.SetLineWidth(r.px(0.8))
	dc.DrawLine(area.Left, area.Bottom, area.Right, area.Bottom)
	dc.Stroke()

	r.setFont(dc, r.opts.FontSize)
	labelY := area.Bottom + r.px(3.5) + r.px(3.5)
	for _, tick := range f.Plan.Minor {
		x := f.AxisToPixel(tick.Coordinate)
		if !area.containsX(x) {
			continue
		}
		dc.DrawLine(x, area.Bottom, x, area.Bottom+r.px(2))
		dc.Stroke()
		dc.DrawStringAnchored(tick.Label, x, labelY, 0.5, 1)
	}

	for _, tick := range f.Plan.Major {
		x := f.AxisToPixel(tick.Coordinate)
		if !area.containsX(x) {
			continue
		}
		dc.DrawLine(x, area.Bottom, x, area.Bottom+r.px(3.5))
		dc.Stroke()
		if f.Plan.LabelRotation == 0 {
			dc.DrawStringAnchored(tick.Label, x, labelY, 0.5, 1)
			continue
		}
		// Rotated labels end at their tick and rise to the left.
		dc.Push()
		dc.RotateAbout(gg.Radians(-f.Plan.LabelRotation), x, labelY)
		dc.DrawStringAnchored(tick.Label, x, labelY, 1, 0.5)
		dc.Pop()
	}

	annotationY := labelY + r.px(r.opts.FontSize) + r.px(6)
	for _, a := range f.Plan.Annotations {
		ax := 0.0
		if a.Anchor == axis.AnchorRight {
			ax = 1
		}
		dc.DrawStringAnchored(a.Text, f.AxisToPixel(a.Coordinate), annotationY, ax, 1)
	}
}

func (r *Renderer) drawTitles(dc *gg.Context, f *Figure) {
	dc.SetColor(color.Black)
	r.setFont(dc, r.opts.TitleFontSize)
	dc.DrawStringAnchored(Title, f.Area.Right, f.Area.Top/2, 1, 0.5)

	r.setFont(dc, r.opts.FontSize)
	dc.DrawStringAnchored(AxisLabel, f.Area.Left, float64(f.Height)-r.px(6), 0, 0)
}

func (r *Renderer) setFont(dc *gg.Context, points float64) {
	if r.opts.FontPath == "" {
		return
	}
	if err := dc.LoadFontFace(r.opts.FontPath, r.px(points)); err != nil {
		log.Warnf("failed to load font %s, keeping the previous face: %v", r.opts.FontPath, err)
	}
}

// px converts typographic points to pixels at the configured DPI.
func (r *Renderer) px(points float64) float64 {
	return points * r.opts.DPI / 72
}
