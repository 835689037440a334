package errx_test

import (
	"errors"
	"fmt"
	"os"

	"faultline/pkg/errx"
)

var errCardDeclined = errors.New("card declined")

func Example() {
	gatewayErr := errors.New("gateway returned 402")

	err := errx.Wrap("81000", "Payment error", "charge failed", gatewayErr).
		WithBase(errCardDeclined).
		WithContext("order", "A-1009")

	if errors.Is(err, errCardDeclined) {
		fmt.Println("declined")
	}
	fmt.Println(err.TypeID())
	fmt.Println(errx.UserString(err))
	err.PrintTrace(os.Stdout)
	// Output:
	// declined
	// 81000
	// charge failed
	// 1: *errx.Error: charge failed | code=81000 | description="Payment error" | message="charge failed" | context={order=A-1009}
	// 2: *errors.errorString: gateway returned 402
}
