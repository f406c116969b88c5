package timing

import "time"

const fpsSampleCount = 60

var (
	startTime      time.Time
	frameStartTime time.Time

	dt float32

	// Ring of the last frame times used for the smoothed fps
	frameTimes     [fpsSampleCount]float32
	frameTimeIndex int
	frameTimeCount int
)

// Init resets the clock. Call once before the first frame
func Init() {
	startTime = time.Now()
	frameStartTime = startTime
	dt = 0.01
	frameTimeIndex = 0
	frameTimeCount = 0
}

func FrameStarted() {
	frameStartTime = time.Now()
}

func FrameEnded() {

	dt = float32(time.Since(frameStartTime).Seconds())

	frameTimes[frameTimeIndex] = dt
	frameTimeIndex = (frameTimeIndex + 1) % fpsSampleCount
	if frameTimeCount < fpsSampleCount {
		frameTimeCount++
	}
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}

func GetAvgFrameTime() float32 {

	if frameTimeCount == 0 {
		return dt
	}

	var sum float32
	for i := 0; i < frameTimeCount; i++ {
		sum += frameTimes[i]
	}

	return sum / float32(frameTimeCount)
}

func GetAvgFPS() float32 {

	avg := GetAvgFrameTime()
	if avg <= 0 {
		return 0
	}

	return 1 / avg
}

// ElapsedTime returns seconds since Init
func ElapsedTime() float64 {
	return time.Since(startTime).Seconds()
}
