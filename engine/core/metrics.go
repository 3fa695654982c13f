package core

const AVG_COUNT uint8 = 30

// FrameMetrics keeps a rolling average of frame times and the frames per second.
type FrameMetrics struct {
	frameAVGCounter    uint8
	msTimes            [AVG_COUNT]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{}
}

func (m *FrameMetrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := (frameElapsedTime * 1000.0)
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == AVG_COUNT-1 {
		m.msAvg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.msAvg += m.msTimes[i]
		}

		m.msAvg /= float64(AVG_COUNT)
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= AVG_COUNT

	// Count all Frames.
	m.frames++

	// Calculate Frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}
}

func (m *FrameMetrics) FPS() float64 {
	return m.fps
}

func (m *FrameMetrics) FrameTime() float64 {
	return m.msAvg
}

func (m *FrameMetrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
