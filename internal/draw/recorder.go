package draw

import (
	"encoding/json"

	"github.com/inamate/sketchpad/internal/geom"
)

// DrawCommand is a single recorded drawing operation. A frontend replays the
// list in order by calling the Canvas2D method named by Op with Args, or by
// assigning Style / Args to the property named by Op.
type DrawCommand struct {
	Op    string    `json:"op"`              // "beginPath", "rect", "ellipse", "stroke", "fill", "strokeStyle", ...
	Args  []float64 `json:"args,omitempty"`  // Numeric arguments in call order
	Style string    `json:"style,omitempty"` // Color for fillStyle / strokeStyle
}

// Recorder is a headless Surface that records every Context call as a
// DrawCommand. Size changes clear the recording, like resizing a canvas
// clears its bitmap.
type Recorder struct {
	commands []DrawCommand

	width, height             float64
	clientWidth, clientHeight float64
	rect                      *geom.BBox
	detached                  bool

	captured map[int]bool
	focused  bool
	cursor   string
}

// NewRecorder creates a recorder whose client and bitmap sizes are width x height.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		width:        width,
		height:       height,
		clientWidth:  width,
		clientHeight: height,
		captured:     make(map[int]bool),
	}
}

// SetClientSize simulates the element being laid out at a new size.
func (r *Recorder) SetClientSize(width, height float64) {
	r.clientWidth = width
	r.clientHeight = height
}

// SetBoundingRect overrides the screen rectangle, which otherwise sits at the
// origin with the client size.
func (r *Recorder) SetBoundingRect(rect geom.BBox) {
	r.rect = &rect
}

// SetDetached makes element queries fail with ErrDetached.
func (r *Recorder) SetDetached(detached bool) {
	r.detached = detached
}

func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Ops returns just the op names, in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.commands))
	for i, c := range r.commands {
		ops[i] = c.Op
	}
	return ops
}

func (r *Recorder) Captured(pointerID int) bool { return r.captured[pointerID] }
func (r *Recorder) Focused() bool               { return r.focused }
func (r *Recorder) Cursor() string              { return r.cursor }

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	data, err := json.Marshal(r.commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// --- Surface ---

func (r *Recorder) ClientSize() (float64, float64) { return r.clientWidth, r.clientHeight }
func (r *Recorder) Size() (float64, float64)       { return r.width, r.height }
func (r *Recorder) Context() Context               { return r }
func (r *Recorder) Focus()                         { r.focused = true }
func (r *Recorder) SetCursor(cursor string)        { r.cursor = cursor }

func (r *Recorder) SetSize(width, height float64) {
	r.width = width
	r.height = height
	r.commands = nil
}

func (r *Recorder) BoundingRect() (geom.BBox, error) {
	if r.detached {
		return geom.BBox{}, ErrDetached
	}
	if r.rect != nil {
		return *r.rect, nil
	}
	return geom.BBox{Width: r.clientWidth, Height: r.clientHeight}, nil
}

func (r *Recorder) SetPointerCapture(pointerID int) error {
	if r.detached {
		return ErrDetached
	}
	r.captured[pointerID] = true
	return nil
}

func (r *Recorder) ReleasePointerCapture(pointerID int) error {
	if r.detached {
		return ErrDetached
	}
	delete(r.captured, pointerID)
	return nil
}

// --- Context ---

func (r *Recorder) record(op string, args ...float64) {
	r.commands = append(r.commands, DrawCommand{Op: op, Args: args})
}

func (r *Recorder) style(op, style string) {
	r.commands = append(r.commands, DrawCommand{Op: op, Style: style})
}

func (r *Recorder) Save()      { r.record("save") }
func (r *Recorder) Restore()   { r.record("restore") }
func (r *Recorder) BeginPath() { r.record("beginPath") }
func (r *Recorder) Fill()      { r.record("fill") }
func (r *Recorder) Stroke()    { r.record("stroke") }

func (r *Recorder) Rect(x, y, width, height float64) {
	r.record("rect", x, y, width, height)
}

func (r *Recorder) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64) {
	r.record("ellipse", x, y, radiusX, radiusY, rotation, startAngle, endAngle)
}

func (r *Recorder) ClearRect(x, y, width, height float64) {
	r.record("clearRect", x, y, width, height)
}

func (r *Recorder) FillRect(x, y, width, height float64) {
	r.record("fillRect", x, y, width, height)
}

func (r *Recorder) SetFillStyle(style string)   { r.style("fillStyle", style) }
func (r *Recorder) SetStrokeStyle(style string) { r.style("strokeStyle", style) }
func (r *Recorder) SetLineWidth(width float64)  { r.record("lineWidth", width) }

func (r *Recorder) SetLineDash(segments []float64) {
	r.commands = append(r.commands, DrawCommand{Op: "setLineDash", Args: append([]float64(nil), segments...)})
}
