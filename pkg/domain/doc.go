/*
Package domain contains the core domain models for the slidenav engine.

It defines the fundamental entities of the navigation core, such as Slides,
focusable Elements, the committed Position, and the validated Config. This
package is kept pure and free of external dependencies like I/O or timers,
following Hexagonal Architecture principles.

# Key Entities

  - Slide: One step of the vertically-stacked form wizard.
  - Element: An opaque handle to a focusable control inside a slide.
  - Position: The committed (intended, not necessarily rendered) position.
  - Config: Form-wide navigation settings, resolved once at construction.
*/
package domain
