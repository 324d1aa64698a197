package insurance_test

import (
	"os"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/onflow/flight-surety/contract/airlines"
	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/insurance"
	"github.com/onflow/flight-surety/contract/testutil"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage/badger/operation"
	"github.com/onflow/flight-surety/utils/unittest"
)

type LedgerSuite struct {
	suite.Suite

	db     *badger.DB
	dir    string
	h      *testutil.Harness
	ledger *insurance.Ledger

	flight    string
	passenger surety.Address
}

func TestLedger(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.db, s.dir = unittest.TempBadgerDB(s.T())
	s.h = testutil.NewHarness(s.T(), s.db)
	s.ledger = insurance.NewLedger()

	s.flight = "SU100"
	s.passenger = unittest.AddressFixture()

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := airlines.AddFlight(txn, s.h.Genesis.FirstAirline.Address, s.flight, 1_700_000_000)
		return err
	})
	s.Require().NoError(err)
}

func (s *LedgerSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
	s.Require().NoError(os.RemoveAll(s.dir))
}

func (s *LedgerSuite) purchase(caller surety.Address, flight string, amount surety.Amount) ([]surety.Event, error) {
	return s.h.Execute(caller, func(env *environment.Environment) error {
		_, err := s.ledger.PurchaseInsurance(env, flight, amount)
		return err
	})
}

func (s *LedgerSuite) claim(caller surety.Address) ([]surety.Event, error) {
	return s.h.Execute(caller, func(env *environment.Environment) error {
		_, err := s.ledger.ClaimInsurance(env, s.flight)
		return err
	})
}

func (s *LedgerSuite) withdraw(caller surety.Address) ([]surety.Event, error) {
	return s.h.Execute(caller, func(env *environment.Environment) error {
		_, err := s.ledger.WithdrawBalance(env)
		return err
	})
}

func (s *LedgerSuite) setFlightStatus(status surety.FlightStatus) {
	err := s.db.Update(func(txn *badger.Txn) error {
		flight, err := airlines.GetFlight(txn, s.flight)
		if err != nil {
			return err
		}
		flight.Status = status
		return operation.UpdateFlight(flight)(txn)
	})
	s.Require().NoError(err)
}

func (s *LedgerSuite) TestPurchase() {
	events, err := s.purchase(s.passenger, s.flight, surety.MustParseAmount("0.5"))
	s.Require().NoError(err)
	s.Require().Len(events, 1)

	var purchased surety.InsurancePurchased
	s.Require().NoError(events[0].Decode(&purchased))
	s.Assert().Equal(surety.MustParseAmount("0.5"), purchased.Amount)
	s.Assert().Equal(surety.MustParseAmount("0.75"), purchased.InsuranceValue)
	s.Assert().Equal(s.passenger, purchased.Passenger)

	s.h.View(s.T(), func(txn *badger.Txn) {
		policy, err := insurance.GetInsurance(txn, s.flight, s.passenger)
		s.Require().NoError(err)
		s.Assert().Equal(surety.PolicyActive, policy.State)
		s.Assert().Equal(surety.MustParseAmount("0.75"), policy.Payout)
	})

	s.Run("second purchase on the same flight", func() {
		_, err := s.purchase(s.passenger, s.flight, surety.MustParseAmount("0.1"))
		s.Require().True(suretyerrors.IsDuplicatePolicyError(err))
	})

	s.Run("another passenger may insure the flight", func() {
		_, err := s.purchase(unittest.AddressFixture(), s.flight, surety.MustParseAmount("0.1"))
		s.Require().NoError(err)

		s.h.View(s.T(), func(txn *badger.Txn) {
			policies, err := insurance.PoliciesByFlight(txn, s.flight)
			s.Require().NoError(err)
			s.Assert().Len(policies, 2)
		})
	})
}

func (s *LedgerSuite) TestPurchaseRejections() {
	_, err := s.purchase(s.passenger, s.flight, surety.MustParseAmount("1.5"))
	s.Require().True(suretyerrors.IsExceedsCapError(err))

	_, err = s.purchase(s.passenger, s.flight, 0)
	s.Require().True(suretyerrors.IsInvalidAmountError(err))

	_, err = s.purchase(s.passenger, "NOPE", surety.MustParseAmount("0.5"))
	s.Require().True(suretyerrors.IsFlightNotFoundError(err))

	// exactly the cap is accepted
	_, err = s.purchase(s.passenger, s.flight, surety.Units(1))
	s.Require().NoError(err)
}

func (s *LedgerSuite) TestClaim() {
	_, err := s.claim(s.passenger)
	s.Require().True(suretyerrors.IsPolicyNotFoundError(err))

	_, err = s.purchase(s.passenger, s.flight, surety.MustParseAmount("0.5"))
	s.Require().NoError(err)

	_, err = s.claim(s.passenger)
	s.Require().True(suretyerrors.IsNotYetLateError(err))

	for _, status := range []surety.FlightStatus{surety.StatusOnTime, surety.StatusLateWeather, surety.StatusLateTechnical, surety.StatusLateOther} {
		s.setFlightStatus(status)
		_, err = s.claim(s.passenger)
		s.Require().True(suretyerrors.IsNotYetLateError(err), "status %s", status)
	}

	s.setFlightStatus(surety.StatusLateAirline)
	events, err := s.claim(s.passenger)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Assert().Equal(surety.EventInsuranceClaimed, events[0].Type)

	s.h.View(s.T(), func(txn *badger.Txn) {
		balance, err := insurance.GetBalance(txn, s.passenger)
		s.Require().NoError(err)
		s.Assert().Equal(surety.MustParseAmount("0.75"), balance)
	})

	_, err = s.claim(s.passenger)
	s.Require().True(suretyerrors.IsAlreadyClaimedError(err))
}

func (s *LedgerSuite) TestWithdraw() {
	_, err := s.withdraw(s.passenger)
	s.Require().True(suretyerrors.IsNothingToWithdrawError(err))

	s.h.Credit(s.T(), surety.ContractAddress, surety.Units(5))
	_, err = s.purchase(s.passenger, s.flight, surety.MustParseAmount("0.5"))
	s.Require().NoError(err)
	s.setFlightStatus(surety.StatusLateAirline)
	_, err = s.claim(s.passenger)
	s.Require().NoError(err)

	events, err := s.withdraw(s.passenger)
	s.Require().NoError(err)
	s.Require().Len(events, 1)

	var withdrawn surety.BalanceWithdrawn
	s.Require().NoError(events[0].Decode(&withdrawn))
	s.Assert().Equal(surety.MustParseAmount("0.75"), withdrawn.Amount)

	s.Assert().Equal(surety.MustParseAmount("0.75"), s.h.AccountBalance(s.T(), s.passenger))
	s.Assert().Equal(surety.MustParseAmount("4.25"), s.h.AccountBalance(s.T(), surety.ContractAddress))

	_, err = s.withdraw(s.passenger)
	s.Require().True(suretyerrors.IsNothingToWithdrawError(err))
}

// A passenger whose account calls back into withdraw while receiving the
// payout must not be paid twice.
func (s *LedgerSuite) TestWithdrawReentrancy() {
	s.h.Credit(s.T(), surety.ContractAddress, surety.Units(5))
	_, err := s.purchase(s.passenger, s.flight, surety.MustParseAmount("0.5"))
	s.Require().NoError(err)
	s.setFlightStatus(surety.StatusLateAirline)
	_, err = s.claim(s.passenger)
	s.Require().NoError(err)

	var (
		env        *environment.Environment
		reentered  int
		reentryErr error
	)
	s.h.Hook = func(from surety.Address, to surety.Address, amount surety.Amount) error {
		if to != s.passenger || reentered > 0 {
			return nil
		}
		reentered++
		_, reentryErr = s.ledger.WithdrawBalance(env)
		return nil
	}

	_, err = s.h.Execute(s.passenger, func(e *environment.Environment) error {
		env = e
		_, err := s.ledger.WithdrawBalance(e)
		return err
	})
	s.Require().NoError(err)
	s.Require().Equal(1, reentered)
	s.Require().True(suretyerrors.IsNothingToWithdrawError(reentryErr))

	s.Assert().Equal(surety.MustParseAmount("0.75"), s.h.AccountBalance(s.T(), s.passenger))
	s.Assert().Equal(surety.MustParseAmount("4.25"), s.h.AccountBalance(s.T(), surety.ContractAddress))
}

func TestGetInsuranceUnknown(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		h := testutil.NewHarness(t, db)
		h.View(t, func(txn *badger.Txn) {
			_, err := insurance.GetInsurance(txn, "SU1", unittest.AddressFixture())
			require.True(t, suretyerrors.IsPolicyNotFoundError(err))

			balance, err := insurance.GetBalance(txn, unittest.AddressFixture())
			require.NoError(t, err)
			assert.Zero(t, balance)
		})
	})
}
