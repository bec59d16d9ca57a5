// Package bridgetest provides test doubles for bridges.
//
// Use FakeClock as the scheduler to fire debounced deliveries
// deterministically, and Instance to count what a bridge did to its instance:
//
//	clock := bridgetest.NewFakeClock()
//	inst := bridgetest.NewInstance()
//	b, _ := bridge.New(inst, def, props, bridge.WithScheduler(clock))
//	inst.Fire("focus")
//	clock.Advance(0)
package bridgetest
