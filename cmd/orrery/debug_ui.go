package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/orrery/ecs/debugui"
	"github.com/plus3/orrery/sim"
)

const meteorHistorySize = 300

// meteorHistory keeps the active meteor count for the last few hundred ticks.
type meteorHistory struct {
	samples []float32
	offset  int
}

func (h *meteorHistory) push(active int) {
	h.samples[h.offset] = float32(active)
	h.offset = (h.offset + 1) % len(h.samples)
}

// ordered returns the samples oldest first.
func (h *meteorHistory) ordered() []float32 {
	out := make([]float32, len(h.samples))
	n := copy(out, h.samples[h.offset:])
	copy(out[n:], h.samples[:h.offset])
	return out
}

func spawnDebugWindows(s *sim.Simulation) {
	storage := s.Storage()
	storage.Spawn(debugui.NewPerformanceWindow(storage, s.Scheduler(), 120).Item())

	history := &meteorHistory{samples: make([]float32, meteorHistorySize)}
	storage.Spawn(debugui.ImguiItem{
		Render: func() { renderSimulationWindow(s, history) },
	})
}

func renderSimulationWindow(s *sim.Simulation, history *meteorHistory) {
	clock, focus, pose, field := s.Clock(), s.Focus(), s.Pose(), s.Meteors()
	history.push(field.Active)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 480), imgui.CondOnce)
	if !imgui.BeginV("Simulation", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Elapsed: %.2f s  Frame: %d", clock.Elapsed, clock.Frame))
	imgui.Text(s.Label())
	if imgui.Button("< Prev") {
		s.Push(sim.FocusRetreat)
	}
	imgui.SameLine()
	if imgui.Button("Next >") {
		s.Push(sim.FocusAdvance)
	}
	imgui.Text(fmt.Sprintf("Focus: %d / %d", focus.Index, focus.Count))

	imgui.Separator()
	debugui.InspectValue("Camera", pose)
	imgui.Text(fmt.Sprintf("Meteors: %d active, %d spawned, %d removed", field.Active, field.Spawned, field.Removed))
	if implot.BeginPlotV("Active Meteors", imgui.NewVec2(-1, 150), 0) {
		implot.SetupAxesV("Tick", "Count", 0, implot.AxisFlagsAutoFit)
		samples := history.ordered()
		implot.PlotLineFloatPtrInt("active", &samples[0], int32(len(samples)))
		implot.EndPlot()
	}

	if id, name, ok := s.Registry().Lookup(focus.Index); ok && imgui.TreeNodeStr("Tracked: "+name) {
		debugui.InspectEntity(s.Storage(), id)
		imgui.TreePop()
	}

	imgui.End()
}
