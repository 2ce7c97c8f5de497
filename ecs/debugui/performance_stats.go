package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/ecs"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

// Push records one frame of dt seconds.
func (h *FrameHistory) Push(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean frame time in milliseconds over recorded frames.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// PerformanceWindow shows storage and scheduler statistics.
type PerformanceWindow struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	history   *FrameHistory
	timer     *FrameTimer
}

func NewPerformanceWindow(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		storage:   storage,
		scheduler: scheduler,
		history:   NewFrameHistory(historyFrames),
		timer:     NewFrameTimer(),
	}
}

// Item wraps the window as an ImguiItem.
func (pw *PerformanceWindow) Item() ImguiItem {
	return ImguiItem{Render: pw.Render}
}

func (pw *PerformanceWindow) Render() {
	pw.history.Push(pw.timer.GetDeltaTime())

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := pw.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := pw.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &pw.history.samples[0], int32(len(pw.history.samples)))

	if pw.scheduler != nil && imgui.TreeNodeStr("Systems") {
		sched := pw.scheduler.GetStats()
		imgui.Text(fmt.Sprintf("Frames: %d  Executions: %d", sched.Frames, sched.TotalExecutions))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float64 {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime).Seconds()
	ft.lastFrameTime = now
	return delta
}
