package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlots(t *testing.T) {
	all, err := parseSlots("all")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mid, err := parseSlots("mid")
	require.NoError(t, err)
	assert.Equal(t, []components.MachinePosition{components.PositionMid}, mid)

	_, err = parseSlots("side")
	assert.Error(t, err)
}

func TestSimulatorRunsSessions(t *testing.T) {
	tuning := config.DefaultGachaTuning()
	tuning.FailChance = 0
	sim := newSimulator(tuning, config.DefaultLayerRegistry(), 7, 16*time.Millisecond)

	r := sim.runSession(components.PositionMid)
	assert.False(t, r.fail)
	assert.Equal(t, "b", r.routeID)
	assert.GreaterOrEqual(t, r.duration, 7300*time.Millisecond)

	tuning.FailChance = 1
	r = sim.runSession(components.PositionBack)
	assert.True(t, r.fail)
	assert.Empty(t, r.routeID)

	var out bytes.Buffer
	report(&out, tuning, []result{{routeID: "b", duration: time.Second}, {fail: true}, {aborted: true}})
	assert.Contains(t, out.String(), "fail rate:      0.500")
	assert.Contains(t, out.String(), "aborted drops:  1")
	assert.Contains(t, out.String(), "route b:")
}

func TestSimulatorSeparatesAbortedDrops(t *testing.T) {
	// 注册表里没有 mid 槽位的娃娃，掉落开始时被中止
	defaults := config.DefaultLayerRegistry()
	var layers []config.Layer
	for _, key := range defaults.Keys() {
		if key == "inside3" {
			continue
		}
		l, _ := defaults.Lookup(key)
		layers = append(layers, l)
	}

	tuning := config.DefaultGachaTuning()
	tuning.FailChance = 0
	sim := newSimulator(tuning, config.NewLayerRegistry(layers), 7, 16*time.Millisecond)

	r := sim.runSession(components.PositionMid)
	assert.True(t, r.aborted)
	assert.False(t, r.fail)
	assert.Empty(t, r.routeID)

	r = sim.runSession(components.PositionFront)
	assert.False(t, r.aborted)
	assert.Equal(t, "a", r.routeID)
}
