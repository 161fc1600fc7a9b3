package latchan

// noCopy is embedded in Sender/Receiver handles to make accidental copies
// of a live handle a build-time failure under `go vet -copylocks` (which
// `go test` runs by default), the closest Go gets to a deleted copy
// constructor. It has no runtime behavior of its own.
//
// See https://golang.org/issue/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
