package render

// ShapeKind identifies how a vertex stream decomposes into primitives.
// Points/Lines/LineStrip/LineLoop are carried over from the reference
// library's ShapeType; Triangles/TriangleStrip/TriangleFan supplement it,
// since the distilled shape enum only covers point and line primitives.
type ShapeKind int

const (
	Points ShapeKind = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
)

// Source is the vertex stream a draw call consumes: a flat VertexBuffer or
// an IndexedVertexBuffer, both satisfying it via value-receiver methods.
type Source[Vx any] interface {
	Len() int
	At(i int) Vx
	Kind() ShapeKind
}

// VertexBuffer is a flat, unindexed vertex stream.
type VertexBuffer[Vx any] struct {
	Shape    ShapeKind
	Vertices []Vx
}

func (b VertexBuffer[Vx]) Len() int      { return len(b.Vertices) }
func (b VertexBuffer[Vx]) At(i int) Vx   { return b.Vertices[i] }
func (b VertexBuffer[Vx]) Kind() ShapeKind { return b.Shape }

// IndexedVertexBuffer is a vertex stream addressed through an index list,
// so shared vertices are stored once.
type IndexedVertexBuffer[Vx any] struct {
	Shape    ShapeKind
	Vertices []Vx
	Indices  []int
}

func (b IndexedVertexBuffer[Vx]) Len() int      { return len(b.Indices) }
func (b IndexedVertexBuffer[Vx]) At(i int) Vx   { return b.Vertices[b.Indices[i]] }
func (b IndexedVertexBuffer[Vx]) Kind() ShapeKind { return b.Shape }
