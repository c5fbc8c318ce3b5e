/*
Package ports defines the driven ports (interfaces) for the slidenav engine.

These interfaces decouple the navigation core from the host page and from
external implementations, allowing the engine to work with real or simulated
surfaces, wall-clock or virtual schedulers, and various persistence backends.

# Key Interfaces

  - Surface: The host page boundary (slides, geometry, scroll, focus).
  - Scheduler: Frame and timer boundaries for the cooperative pipeline.
  - Validator: The pluggable per-slide validation capability.
  - ProgressReporter: Progress bar, counter, and button-state collaborators.
  - PositionStore: Persistence of the committed position per session.
  - SessionLocker: Distributed locking for multi-replica session access.
*/
package ports
