// Package orbit computes body positions for the two competing sky models.
//
// Everything here is a pure function of simulated time:
//
//   - [PositionOnCircle]: circular-orbit kinematics shared by every mode
//   - [HeliocentricModel]: Sun-centred planet and Earth, plus the apparent
//     direction and geocentric-frame positions derived from them
//   - [PtolemaicModel]: Earth-centred deferent, epicycle and sun
//   - [NewModel]: the single dispatch point from [Mode] to its model
//
// # Tables
//
// Mode tables ([Venus], [Mars], [Ptolemaic]) are copied by value into each
// model, so a running scene never observes a table change.
package orbit
