// Package main provides a headless Monte-Carlo simulator for the claw machine.
//
// 在没有窗口的情况下驱动真实的状态机，统计失败率、各路线次数和单次抓取耗时，
// 用于调整 failChance 等参数。
//
// Usage:
//
//	go run ./cmd/gacha_sim -n 5000 -seed 42
//	go run ./cmd/gacha_sim -slot mid -fail-chance 0.5 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/systems"
	"github.com/decker502/clawtrip/pkg/utils"
)

var (
	sessions   = flag.Int("n", 1000, "模拟的会话数")
	seed       = flag.Uint64("seed", 1, "随机种子")
	slotName   = flag.String("slot", "all", "抓取槽位：back / mid / front / all（轮流）")
	failChance = flag.Float64("fail-chance", -1, "覆盖失败概率（负数表示使用配置）")
	tuningPath = flag.String("tuning", config.TuningConfigPath, "时序参数文件")
	frameMs    = flag.Int("frame", 16, "模拟帧间隔（毫秒）")
	verbose    = flag.Bool("verbose", false, "显示状态机日志")
)

// result 一次会话的结果
type result struct {
	slot     config.SlotSpec
	routeID  string
	fail     bool
	aborted  bool // 掉落因娃娃缺失被中止，不计入失败
	duration time.Duration
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	tuning, err := config.LoadGachaTuningConfig(*tuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		tuning = config.DefaultGachaTuning()
	}
	if *failChance >= 0 {
		tuning.FailChance = *failChance
		if err := tuning.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -fail-chance: %v\n", err)
			os.Exit(2)
		}
	}

	positions, err := parseSlots(*slotName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sim := newSimulator(tuning, config.DefaultLayerRegistry(), *seed, time.Duration(*frameMs)*time.Millisecond)
	results := make([]result, 0, *sessions)
	for i := 0; i < *sessions; i++ {
		results = append(results, sim.runSession(positions[i%len(positions)]))
	}
	report(os.Stdout, tuning, results)
}

func parseSlots(name string) ([]components.MachinePosition, error) {
	if name == "all" {
		return []components.MachinePosition{
			components.PositionBack, components.PositionMid, components.PositionFront,
		}, nil
	}
	for i, slot := range config.Slots {
		if slot.Name == name {
			return []components.MachinePosition{components.MachinePosition(i)}, nil
		}
	}
	return nil, fmt.Errorf("unknown slot %q", name)
}

// simulator 用手动时钟驱动状态机
type simulator struct {
	clock  *utils.ManualClock
	state  *components.GachaState
	system *systems.GachaSystem
	frame  time.Duration

	lastRoute string
}

func newSimulator(tuning *config.GachaTuningConfig, registry *config.LayerRegistry, seed uint64, frame time.Duration) *simulator {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	s := &simulator{
		clock: utils.NewManualClock(),
		state: components.NewGachaState(),
		frame: frame,
	}
	s.system = systems.NewGachaSystem(s.state, registry, tuning, s.clock,
		systems.NewSeededRNG(seed), func(routeID string) { s.lastRoute = routeID })
	return s
}

// step 推进一帧
func (s *simulator) step() {
	s.clock.Advance(s.frame)
	s.system.Update()
}

// runSession 移动到槽位、按下按钮，直到成功或失败后回到 idle
func (s *simulator) runSession(pos components.MachinePosition) result {
	s.system.StartSession()
	s.lastRoute = ""
	for s.state.Position < pos {
		s.system.Move(components.JoystickLeft)
	}
	// 等摇杆回正
	for s.state.Phase != components.PhaseIdle {
		s.step()
	}

	start := s.clock.Now()
	aborts := s.system.Stats().Aborts
	s.system.Press()
	for s.system.Running() && !s.system.AcceptsInput() {
		s.step()
	}

	aborted := s.system.Stats().Aborts > aborts
	return result{
		slot:     pos.Slot(),
		routeID:  s.lastRoute,
		fail:     s.lastRoute == "" && !aborted,
		aborted:  aborted,
		duration: s.clock.Now().Sub(start),
	}
}

// report 输出统计；失败率只统计完成的抓取（中止的不算）
func report(w io.Writer, tuning *config.GachaTuningConfig, results []result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no sessions")
		return
	}

	fails, aborted := 0, 0
	routes := make(map[string]int)
	var successTime, failTime time.Duration
	for _, r := range results {
		if r.aborted {
			aborted++
			continue
		}
		if r.fail {
			fails++
			failTime += r.duration
			continue
		}
		routes[r.routeID]++
		successTime += r.duration
	}
	completed := len(results) - aborted
	successes := completed - fails

	fmt.Fprintf(w, "sessions:       %d\n", len(results))
	fmt.Fprintf(w, "fail chance:    %.3f (configured)\n", tuning.FailChance)
	if completed > 0 {
		fmt.Fprintf(w, "fail rate:      %.3f (%d fails)\n", float64(fails)/float64(completed), fails)
	}
	fmt.Fprintf(w, "aborted drops:  %d\n", aborted)
	if successes > 0 {
		fmt.Fprintf(w, "success time:   %s avg\n", successTime/time.Duration(successes))
	}
	if fails > 0 {
		fmt.Fprintf(w, "fail time:      %s avg\n", failTime/time.Duration(fails))
	}

	ids := make([]string, 0, len(routes))
	for id := range routes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "route %-8s  %d\n", id+":", routes[id])
	}
}
