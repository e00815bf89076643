package services

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

// CheckoutService builds signed checkout URLs for the payment provider and
// validates result callbacks. The provider echoes the custom Shp_ parameters
// (hr email and package id) back on the result URL, which is how the webhook
// learns whom to upgrade.
type CheckoutService struct {
	MerchantLogin string
	Password1     string
	Password2     string
	BaseURL       string
	IsTest        bool
}

// GeneratePayURL builds the redirect URL for a package purchase.
// Signature: md5(MerchantLogin:OutSum:InvId:Password1:Shp_email=..:Shp_package=..)
// with Shp_ params in alphabetical order, per the provider contract.
func (s *CheckoutService) GeneratePayURL(txnID string, amount float64, description, hrEmail, packageID string) (string, error) {
	shpEmail := "Shp_email=" + hrEmail
	shpPackage := "Shp_package=" + packageID

	raw := fmt.Sprintf("%s:%.2f:%s:%s:%s:%s", s.MerchantLogin, amount, txnID, s.Password1, shpEmail, shpPackage)
	sig := fmt.Sprintf("%x", md5.Sum([]byte(raw)))

	params := url.Values{}
	params.Set("MerchantLogin", s.MerchantLogin)
	params.Set("OutSum", fmt.Sprintf("%.2f", amount))
	params.Set("InvId", txnID)
	params.Set("Description", description)
	params.Set("Shp_email", hrEmail)
	params.Set("Shp_package", packageID)
	params.Set("SignatureValue", strings.ToUpper(sig))
	if s.IsTest {
		params.Set("IsTest", "1")
	}

	return fmt.Sprintf("%s?%s", s.BaseURL, params.Encode()), nil
}

// VerifyResult validates the callback signature:
// md5(OutSum:InvId:Password2:Shp_email=..:Shp_package=..)
func (s *CheckoutService) VerifyResult(outSum, txnID, hrEmail, packageID, signature string) bool {
	shpEmail := "Shp_email=" + hrEmail
	shpPackage := "Shp_package=" + packageID

	raw := fmt.Sprintf("%s:%s:%s:%s:%s", outSum, txnID, s.Password2, shpEmail, shpPackage)
	expected := fmt.Sprintf("%x", md5.Sum([]byte(raw)))
	return strings.EqualFold(expected, signature)
}
