// Package bridge drives imperative, instance-based components from a
// declarative stream of props.
//
// A Bridge owns one instance (a DOM-like element, a native view, any Go value
// with methods) and a static Definition describing three features:
//
//   - Accessors: named get/set pairs. A set is forwarded to the instance only
//     when the value differs from the last value observed through the
//     accessor, which breaks get/set feedback loops between the instance and
//     the props that mirror it.
//   - Effects: callbacks fired when any of a set of props changes identity.
//   - Events: instance events routed to handler props. Exactly one real
//     listener is attached per event; handler props can change on every
//     update without re-subscribing. Events sharing an exclusive group are
//     debounced so only the most recent one in a window is delivered.
//
// # Lifecycle
//
//	b, err := bridge.New(el, def, bridge.Props{"value": "a"})
//	...
//	err = b.Update(bridge.Props{"value": "b", "onChange": onChange})
//	...
//	err = b.Destroy()
//
// Every call on a destroyed Bridge, including a second Destroy, returns an
// error wrapping ErrDestroyed.
//
// # Threading
//
// A Bridge is not safe for concurrent use. Update, Get, Set, On, Un and
// Destroy must be called from the UI thread. Debounced event delivery is
// scheduled through a dispatch.Scheduler whose timers post back through
// dispatch.Run, so handlers run on the UI thread as well: either through a
// dispatcher registered with dispatch.RegisterDispatch, or when the loop that
// owns the bridge calls dispatch.Drain.
package bridge
