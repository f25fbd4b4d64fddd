// Package event provides the observer bus for keycalc.
//
// Components publish events on dot-separated topics and subscribe with
// glob patterns, so the calculator engine never depends on the renderer,
// the scripting host or any other consumer of its signals.
//
// # Topics
//
//	calc.invalid      - entry was rejected (duplicate decimal point, digit limit)
//	calc.divzero      - a division by zero replaced the display with the sentinel
//	calc.result       - a result was computed
//	calc.cleared      - the calculator was cleared
//	config.reloaded   - the configuration file changed and was applied
//
// # Patterns
//
// Subscription patterns use glob syntax: "*" matches any run of characters
// (including dots) and "?" matches one character.
//
//	calc.*       - every calculator signal
//	*.reloaded   - any reload notification
//
// # Delivery
//
// Delivery is synchronous: Publish calls matching handlers in subscription
// order before it returns. A panicking handler is recovered, counted and
// reported to the bus panic handler; delivery continues with the next
// subscriber.
package event
