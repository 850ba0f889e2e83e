// Command almanac prints Vietnamese almanac data for a date or a range:
// Can-Chi, the 12 Trực, Lục Hắc Đạo, stars and hourly windows.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
