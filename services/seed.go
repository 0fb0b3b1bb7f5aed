package services

import (
	"time"

	"github.com/LevaniIlashvili/Bankist/models"
)

// DemoAccounts returns the two hardcoded accounts the demo ships with.
// There is no signup flow; these exist from process start until explicitly
// closed.
func DemoAccounts() []*models.Account {
	return []*models.Account{
		{
			Owner:        "Levan Ilashvili",
			Movements:    []float64{200, 455.23, -306.5, 25000, -642.21, -133.9, 79.97, 1300},
			InterestRate: 1.2,
			Pin:          1111,
			MovementsDates: []time.Time{
				mustTime("2021-11-18T21:31:17.178Z"),
				mustTime("2021-12-23T07:42:02.383Z"),
				mustTime("2022-01-28T09:15:04.904Z"),
				mustTime("2022-04-01T10:17:24.185Z"),
				mustTime("2022-05-08T14:11:59.604Z"),
				mustTime("2022-05-27T17:01:17.194Z"),
				mustTime("2023-01-21T23:36:17.929Z"),
				mustTime("2023-01-23T10:51:36.790Z"),
			},
			Currency: "EUR",
			Locale:   "pt-PT",
		},
		{
			Owner:        "Jessica Davis",
			Movements:    []float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30},
			InterestRate: 1.5,
			Pin:          2222,
			MovementsDates: []time.Time{
				mustTime("2021-11-01T13:15:33.035Z"),
				mustTime("2021-11-30T09:48:16.867Z"),
				mustTime("2021-12-25T06:04:23.907Z"),
				mustTime("2022-01-25T14:18:46.235Z"),
				mustTime("2022-02-05T16:33:06.386Z"),
				mustTime("2022-04-10T14:43:26.374Z"),
				mustTime("2023-01-18T18:49:59.371Z"),
				mustTime("2023-01-20T12:01:20.894Z"),
			},
			Currency: "USD",
			Locale:   "en-US",
		},
	}
}

// mustTime is only used on the literals above.
func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
