// Package dashboard implements a small framework for live, text-mode status
// dashboards.
//
// A host creates a Dashboard over a Terminal, registers one or more Windows,
// fills each Window with named, typed Fields at fixed coordinates, and calls
// Run. Run interleaves keypress dispatch with fixed-interval periodic work on a
// single goroutine.
//
// # Key Components
//
//	Thresholds - Sorted inclusive value ranges mapped to override colors
//	Field      - One named, positioned, formatted value of type T
//	Window     - A bordered surface and its registry of fields
//	Dashboard  - Window ownership plus the cooperative event loop
//
// # Color Resolution
//
// Every render picks its color in this order:
//
//  1. the explicit color passed to the update, unless it is ColorDefault
//  2. the first threshold (in ascending (low, high) order) containing the value
//  3. the field's default color
//
// ColorDefault means "leave the terminal attributes alone".
//
// # Field Registry
//
// Fields of different value types live in one namespace per window: adding
// "load" as a float64 and later as a string fails with NameCollision. The name
// "title" is reserved for AddTitle. Fields must start inside the window
// (x < width, y < height).
//
// # Event Loop
//
// Run blocks in Terminal.PollInput for at most interval/4. A key equal to the
// shutdown key ends the loop; any other key goes to Handler.HandleChar. After
// each wait the loop checks whether interval has elapsed since the last
// periodic run and, if so, calls Handler.HandlePeriodic. Nothing runs
// concurrently with the loop body, so handlers may update fields directly.
//
// # Ownership
//
// Windows are reference counted. NewWindow returns a window holding one
// reference for its creator; Dashboard.AddWindow takes another. The surface is
// destroyed when the last reference is released, which is not necessarily
// when Run returns.
package dashboard
