package render

// Renderer renders one use case result
type Renderer[T any] interface {
	Render(result T) error
}
