package application

import "github.com/Apurer/storefront-admin/internal/shared/fault"

func mapError(err error) error {
	return fault.Storage("purchase ledger", err)
}
