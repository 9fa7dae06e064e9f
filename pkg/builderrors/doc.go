// Package builderrors defines sentinel errors shared across the build
// orchestration packages. Callers wrap these with [fmt.Errorf] and callers
// test for them with [errors.Is].
package builderrors
