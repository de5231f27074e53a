// Package terminal draws the flow session in a terminal with tcell
//
// View implements both the engine's HUD port and the scene port: the track is shown
// top-down with lanes as columns and distance ahead as rows, the HUD is overlaid as text.
// The engine writes state through the port methods; Render composes and shows a frame.
package terminal
