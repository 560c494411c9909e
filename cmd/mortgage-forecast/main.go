// Command mortgage-forecast projects the monthly costs of a home purchase
// against renting and exports them as CSV, a chart and a console summary.
package main

func main() {
	Execute()
}
