// Package wiring attaches a logbase logger to an application: it registers
// the logger with a service locator and funnels the application's "error"
// events into it.
//
// Typical usage
//
//	teardown, err := wiring.Register(locator, bus, &zerologger.Service{})
//	if err != nil { return err }
//	defer teardown()
package wiring
