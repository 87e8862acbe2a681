package utils

// Index is a list of global indices, used for DOF sets and scatter targets.
type Index []int
