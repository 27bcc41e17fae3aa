package syntax

import "encoding/json"

// SourceRange locates a span of source text. Lines and columns are
// zero-indexed. The zero value is the "unknown" sentinel.
type SourceRange struct {
	StartLine   uint32 `json:"start_line"`
	StartColumn uint32 `json:"start_column"`
	EndLine     uint32 `json:"end_line"`
	EndColumn   uint32 `json:"end_column"`
}

// IsUnknown reports whether the range is the zero-valued sentinel.
func (r SourceRange) IsUnknown() bool {
	return r == SourceRange{}
}

// position is the nested encoding used by legacy CST output.
type position struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// nestedRange is the legacy nested {start:{line,column}, end:{line,column}}
// range encoding.
type nestedRange struct {
	Start position `json:"start"`
	End   position `json:"end"`
}

// nested converts the range to its nested encoding.
func (r SourceRange) nested() nestedRange {
	return nestedRange{
		Start: position{Line: r.StartLine, Column: r.StartColumn},
		End:   position{Line: r.EndLine, Column: r.EndColumn},
	}
}

func (n nestedRange) flat() SourceRange {
	return SourceRange{
		StartLine:   n.Start.Line,
		StartColumn: n.Start.Column,
		EndLine:     n.End.Line,
		EndColumn:   n.End.Column,
	}
}

// UnmarshalJSON accepts both the flat {start_line, ...} and the nested
// {start: {line, column}, ...} encodings. Both forms exist in legacy output
// and must be normalized on read.
func (r *SourceRange) UnmarshalJSON(data []byte) error {
	var probe struct {
		StartLine   *uint32         `json:"start_line"`
		StartColumn uint32          `json:"start_column"`
		EndLine     uint32          `json:"end_line"`
		EndColumn   uint32          `json:"end_column"`
		Start       json.RawMessage `json:"start"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.Start != nil && probe.StartLine == nil {
		var nested nestedRange
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		*r = nested.flat()
		return nil
	}

	if probe.StartLine != nil {
		r.StartLine = *probe.StartLine
	} else {
		r.StartLine = 0
	}
	r.StartColumn = probe.StartColumn
	r.EndLine = probe.EndLine
	r.EndColumn = probe.EndColumn
	return nil
}
