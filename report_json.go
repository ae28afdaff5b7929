package boxscan

import (
	"encoding/hex"
	"encoding/json"
	"io"
)

// BoxNode is a box in the tree built by JSONReporter.
type BoxNode struct {
	Type      BoxType     `json:"type"`
	Offset    int64       `json:"offset"`
	Size      int64       `json:"size"`
	Version   *uint8      `json:"version,omitempty"`
	Flags     string      `json:"flags,omitempty"`
	Container bool        `json:"container,omitempty"`
	Fields    []FieldNode `json:"fields,omitempty"`
	Dump      string      `json:"dump,omitempty"`
	Children  []*BoxNode  `json:"children,omitempty"`
}

// FieldNode is one decoded field. Names repeat for list-like fields such as
// compatible brands and edit list entries.
type FieldNode struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// JSONReporter collects the box tree and writes it as one JSON document
// when the scan completes.
type JSONReporter struct {
	w     io.Writer
	Boxes []*BoxNode
	stack []*BoxNode // open boxes, indexed by depth
}

// NewJSONReporter creates a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

func (j *JSONReporter) Box(depth int, h Header) {
	node := &BoxNode{Type: h.Type, Offset: h.Offset, Size: h.Size, Container: IsContainerBox(h.Type)}
	if depth == 0 || len(j.stack) == 0 {
		j.Boxes = append(j.Boxes, node)
	} else {
		parent := j.stack[min(depth, len(j.stack))-1]
		parent.Children = append(parent.Children, node)
	}
	j.stack = append(j.stack[:min(depth, len(j.stack))], node)
}

// owner returns the open box that fields at depth belong to.
func (j *JSONReporter) owner(depth int) *BoxNode {
	if len(j.stack) == 0 {
		return nil
	}
	return j.stack[max(0, min(depth-1, len(j.stack)-1))]
}

// Field appends a field to its box. The version and flags of a full box
// become node attributes instead.
func (j *JSONReporter) Field(depth int, name string, value any) {
	n := j.owner(depth)
	if n == nil {
		return
	}
	if IsFullBox(n.Type) {
		switch v := value.(type) {
		case uint8:
			if name == "version" {
				n.Version = &v
				return
			}
		case string:
			if name == "flags" {
				n.Flags = v
				return
			}
		}
	}
	n.Fields = append(n.Fields, FieldNode{Name: name, Value: value})
}

func (j *JSONReporter) Bytes(depth int, offset int64, data []byte) {
	if n := j.owner(depth); n != nil {
		n.Dump = hex.EncodeToString(data)
	}
}

func (j *JSONReporter) EndBox(depth int, h Header) {
	if depth < len(j.stack) {
		j.stack = j.stack[:depth]
	}
}

func (j *JSONReporter) Summary(count int) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Boxes []*BoxNode `json:"boxes"`
		Count int        `json:"count"`
	}{j.Boxes, count})
}
