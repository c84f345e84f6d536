package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Ink-Wars/internal/config"
	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// reportEveryTicks is the reporter sampling period inside a battle.
const reportEveryTicks = 60

type runStats struct {
	runIndex int
	seed     int64

	// Tick markers, -1 when the event never happened.
	firstCaptureTick  int
	firstExplodeTick  int
	firstBattleEnd    int
	firstStageClear   int
	firstHeadquarters int

	wins, losses, turnEnds int
	turnsPlayed            int
	finalStage             int
	finalOwnership         [2]float64

	captures, destroyed int
	built, rejected     int
	noTarget            int
	sides               [2]sim.SideStats

	hitStops, shakes int
	sounds           int

	windowSummary *sim.WindowReport
	finalSnapshot string // last sampled snapshot, formatted
	lastBattleLog string // SimLog lines of the final battle
}

func main() {
	var runs int
	var turns int
	var stage int
	var seedBase int64
	var seedStep int64
	var dt float64
	var rulesPath string
	var detail bool

	flag.IntVar(&runs, "runs", 5, "number of headless campaign runs")
	flag.IntVar(&turns, "turns", 6, "turns (battles) per run")
	flag.IntVar(&stage, "stage", 1, "stage each run starts on")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&dt, "dt", 1.0/60.0, "seconds per tick")
	flag.StringVar(&rulesPath, "config", "", "rules YAML (default: embedded rules)")
	flag.BoolVar(&detail, "detail", false, "print each run's final snapshot and last battle log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		return
	}
	if dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		return
	}
	rules, err := config.LoadOrDefault(rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("runs=%d turns=%d stage=%d seed_base=%d seed_step=%d dt=%.4f\n\n", runs, turns, stage, seedBase, seedStep, dt)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runCampaign(rules, i+1, seed, stage, turns, dt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(stats, detail)
	}

	printAggregate(all)
}

// runCampaign plays turns battles with both sides on autopilot.
func runCampaign(rules *config.Rules, runIndex int, seed int64, stage, turns int, dt float64) (runStats, error) {
	fx := &sim.EffectRecorder{}
	simLog := sim.NewSimLog(false)
	w, err := sim.NewWorld(rules,
		sim.WithSeed(seed),
		sim.WithEffects(fx),
		sim.WithSimLog(simLog),
		sim.WithStartStage(stage),
	)
	if err != nil {
		return runStats{}, fmt.Errorf("new world: %w", err)
	}
	rep := sim.NewReporter(0)
	maxTicks := int(rules.Battle.Duration/dt) + 2*reportEveryTicks

	rs := runStats{runIndex: runIndex, seed: seed}
	for turn := 0; turn < turns; turn++ {
		w.PlaceAI(sim.SideA)
		w.BeginBattle()
		for n := 0; w.Phase() == sim.PhaseSimulating && n < maxTicks; n++ {
			w.Tick(dt, sim.NoInput{})
			if w.TickCount()%reportEveryTicks == 0 {
				rep.Collect(w)
			}
		}
		w.Skip() // no-op unless the tick cap was hit
		rs.turnsPlayed++
		switch w.Outcome() {
		case sim.OutcomeWin:
			rs.wins++
		case sim.OutcomeLoss:
			rs.losses++
		default:
			rs.turnEnds++
		}
		a, b := w.Board().Ownership()
		rs.finalOwnership = [2]float64{a, b}
		rs.finalStage = w.Stage()
		w.Confirm()
	}

	entries := simLog.Entries()
	rs.firstCaptureTick = firstTick(entries, "capture", "captured", "")
	rs.firstExplodeTick = firstTick(entries, "actor", "explode", "")
	rs.firstBattleEnd = firstTick(entries, "phase", "summary", "")
	rs.firstStageClear = firstTick(entries, "phase", "summary", sim.OutcomeWin.String())
	rs.firstHeadquarters = firstTick(entries, "capture", "destroyed", "")
	rs.captures = simLog.CountCategory("capture", "captured")
	rs.destroyed = simLog.CountCategory("capture", "destroyed")
	rs.built = simLog.CountCategory("place", "built")
	rs.rejected = simLog.CountCategory("place", "rejected")
	rs.noTarget = simLog.CountCategory("fire", "no_target")
	rs.sides = w.Stats().Sides
	rs.hitStops = len(fx.HitStops)
	rs.shakes = len(fx.Shakes)
	rs.sounds = len(fx.Sounds)
	rs.windowSummary = rep.WindowSummary()
	rs.finalSnapshot = rep.FormatLatest()
	if e, ok := simLog.LastOf("phase", "battle"); ok {
		rs.lastBattleLog = simLog.FormatRange(e.Tick, w.TickCount())
	}
	return rs, nil
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats, detail bool) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_capture=%d first_explode=%d first_hq_down=%d first_battle_end=%d first_stage_clear=%d\n",
		rs.firstCaptureTick, rs.firstExplodeTick, rs.firstHeadquarters, rs.firstBattleEnd, rs.firstStageClear)
	fmt.Printf("outcomes: turns=%d wins=%d losses=%d turn_ends=%d final_stage=%d\n",
		rs.turnsPlayed, rs.wins, rs.losses, rs.turnEnds, rs.finalStage)
	fmt.Printf("final_ownership: a=%.1f%% b=%.1f%%\n", rs.finalOwnership[0]*100, rs.finalOwnership[1]*100)
	fmt.Printf("event_totals: built=%d rejected=%d captured=%d destroyed=%d no_target=%d\n",
		rs.built, rs.rejected, rs.captures, rs.destroyed, rs.noTarget)
	for i, side := range []sim.Side{sim.SideA, sim.SideB} {
		s := rs.sides[i]
		fmt.Printf("side_%s: shots=%d impacts=%d captures=%d lost=%d explosions=%d placed=%d spent=%d income=%d\n",
			side, s.Shots, s.Impacts, s.Captures, s.Lost, s.Explosions, s.Placed, s.Spent, s.Income)
	}
	fmt.Printf("effects: hit_stops=%d shakes=%d sounds=%d\n", rs.hitStops, rs.shakes, rs.sounds)
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Printf("window_ownership_avg: a=%.1f%% b=%.1f%%\n",
			rs.windowSummary.AvgOwnership[sim.SideA]*100, rs.windowSummary.AvgOwnership[sim.SideB]*100)
	}
	if stale, reason := detectStalemate(rs); stale {
		fmt.Printf("stalemate: %s\n", reason)
	}
	if detail {
		fmt.Print(rs.finalSnapshot)
		fmt.Println("last_battle_log:")
		fmt.Print(rs.lastBattleLog)
	}
	fmt.Println()
}

// detectStalemate flags a run where no battle was decided and neither side
// holds a clear majority of the board.
func detectStalemate(rs runStats) (bool, string) {
	if rs.wins > 0 || rs.losses > 0 {
		return false, "decided"
	}
	a, b := rs.finalOwnership[0], rs.finalOwnership[1]
	if a >= 0.5 || b >= 0.5 {
		return false, fmt.Sprintf("majority a=%.2f b=%.2f", a, b)
	}
	reasons := []string{"no_decision"}
	if rs.captures+rs.destroyed == 0 {
		reasons = append(reasons, "no_captures")
	}
	if d := a - b; d < 0.1 && d > -0.1 {
		reasons = append(reasons, "even_split")
	}
	return true, strings.Join(reasons, ",")
}

func printAggregate(all []runStats) {
	wins, losses, turnEnds, turns := 0, 0, 0, 0
	captures, destroyed, stalemates := 0, 0, 0
	var ownA, ownB float64
	captureTicks := make([]int, 0, len(all))
	explodeTicks := make([]int, 0, len(all))
	clearTicks := make([]int, 0, len(all))

	for _, rs := range all {
		wins += rs.wins
		losses += rs.losses
		turnEnds += rs.turnEnds
		turns += rs.turnsPlayed
		captures += rs.captures
		destroyed += rs.destroyed
		ownA += rs.finalOwnership[0]
		ownB += rs.finalOwnership[1]
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		if rs.firstCaptureTick >= 0 {
			captureTicks = append(captureTicks, rs.firstCaptureTick)
		}
		if rs.firstExplodeTick >= 0 {
			explodeTicks = append(explodeTicks, rs.firstExplodeTick)
		}
		if rs.firstStageClear >= 0 {
			clearTicks = append(clearTicks, rs.firstStageClear)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d turns=%d stalemates=%d\n", len(all), turns, stalemates)
	fmt.Printf("outcome_rates: win=%.1f%% loss=%.1f%% turn_end=%.1f%%\n",
		pct(wins, turns), pct(losses, turns), pct(turnEnds, turns))
	fmt.Printf("avg_per_run: turns=%.1f captured=%.1f destroyed=%.1f final_own_a=%.1f%% final_own_b=%.1f%%\n",
		avg(turns, len(all)), avg(captures, len(all)), avg(destroyed, len(all)),
		ownA/float64(len(all))*100, ownB/float64(len(all))*100)
	fmt.Printf("phase_marker_avg_ticks: first_capture=%s first_explode=%s first_stage_clear=%s\n",
		avgTickString(captureTicks), avgTickString(explodeTicks), avgTickString(clearTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(part, total int) float64 {
	return avg(part*100, total)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
