// Package bake declares named container build targets (build file, stage,
// platforms, contexts, args, labels) and groups as pure data for an
// external container build engine. Contexts are resolved to concrete image
// references at description time so builds stay reproducible when upstream
// tags move.
package bake
