package domain

import "time"

type Asset struct {
	Symbol               string   `json:"symbol"`
	Name                 string   `json:"name"`
	Decimals             int      `json:"decimals"`
	DepositFee           string   `json:"depositFee"`
	DepositConfirmations int      `json:"depositConfirmations"`
	DepositStatus        string   `json:"depositStatus"`
	WithdrawalFee        string   `json:"withdrawalFee"`
	WithdrawalMinAmount  string   `json:"withdrawalMinAmount"`
	WithdrawalStatus     string   `json:"withdrawalStatus"`
	Networks             []string `json:"networks"`
	Message              string   `json:"message"`

	UpdatedAt time.Time `json:"updatedAt"`
}
