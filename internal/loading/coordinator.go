// Package loading tracks in-flight API calls and publishes a busy indicator.
package loading

import "sync"

// DefaultMessage is shown when a call does not provide its own loader message.
const DefaultMessage = "Processing..."

// State is the busy-indicator state published to observers.
type State struct {
	InFlight int
	Visible  bool
	Message  string
}

// Observer receives every state change of a Coordinator.
// Observers are called with the coordinator lock held and must not call
// back into the coordinator.
type Observer interface {
	OnLoadingChange(State)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(State)

func (f ObserverFunc) OnLoadingChange(s State) { f(s) }

// Coordinator owns the in-flight counter shared by all requests.
// The indicator is visible exactly when the counter is positive.
type Coordinator struct {
	mu        sync.Mutex
	inFlight  int
	message   string
	nextID    int
	observers []subscription
}

type subscription struct {
	id       int
	observer Observer
}

// NewCoordinator returns a coordinator with no requests in flight.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Start counts a new in-flight request and publishes message.
func (c *Coordinator) Start(message string) {
	if message == "" {
		message = DefaultMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight++
	c.message = message
	c.publish()
}

// Stop uncounts a request. The counter never drops below zero; reaching zero
// hides the indicator.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if c.inFlight <= 0 {
		c.inFlight = 0
		c.message = ""
	}
	c.publish()
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// InFlight returns the number of counted requests still pending.
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Subscribe registers o and returns a function that removes it again.
func (c *Coordinator) Subscribe(o Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, subscription{id: id, observer: o})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.observers {
				if sub.id == id {
					c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Coordinator) snapshot() State {
	return State{
		InFlight: c.inFlight,
		Visible:  c.inFlight > 0,
		Message:  c.message,
	}
}

// publish must be called with c.mu held.
func (c *Coordinator) publish() {
	state := c.snapshot()
	for _, sub := range c.observers {
		sub.observer.OnLoadingChange(state)
	}
}
