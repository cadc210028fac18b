package chip8

// rendererMock records rendered frames.
type rendererMock struct {
	frames []Frame
	err    error
}

func (m *rendererMock) Render(frame Frame) error {
	if m.err != nil {
		return m.err
	}
	m.frames = append(m.frames, frame)
	return nil
}
