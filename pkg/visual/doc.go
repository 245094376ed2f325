// Package visual captures pages in a real browser and compares them with
// stored baselines.
//
// A Runner visits every route at every Viewport through a Capturer (the go-rod
// implementation is RodCapturer), strips elements whose content changes
// between runs, takes a full-page PNG and either records it as the new
// baseline (ModeUpdate) or compares it with the stored one (ModeVerify).
// Compare is a pure pixel diff and can be used on its own.
package visual
