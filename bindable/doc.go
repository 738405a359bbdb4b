// Package bindable provides the observable value primitives shared by the
// scene graph and the audio subsystem.
//
// A [Bindable] holds one value and notifies its subscribers synchronously,
// in subscription order, whenever the value changes. An [Event] is a plain
// observer list without a stored value. Every subscription returns a
// [Subscription] token; calling Unsubscribe on it is the only way to detach
// a single listener, and UnbindAll detaches all of them.
//
// Nothing here is safe for concurrent use. Mutate bindables from the update
// thread only and hand other goroutines a copied value instead.
package bindable
