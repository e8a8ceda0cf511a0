package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/fadedpez/youvibe/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo *MemoryRepository
	ctx  context.Context
}

func TestMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemoryRepository()
	s.ctx = context.Background()
}

func (s *MemoryRepositoryTestSuite) TestGetWalletDefaultsToZero() {
	// Execute
	wallet, err := s.repo.GetWallet(s.ctx, "user-1")

	// Assert
	s.NoError(err)
	s.Equal("user-1", wallet.OwnerID)
	s.Equal(int64(0), wallet.CoinBalance, "Untouched wallet should have zero coins")
	s.Equal(float64(0), wallet.CashBalance, "Untouched wallet should have zero cash")
}

func (s *MemoryRepositoryTestSuite) TestCreditCoinsCreatesLazily() {
	// Execute
	balance, err := s.repo.CreditCoins(s.ctx, "user-1", 75)

	// Assert
	s.NoError(err)
	s.Equal(int64(75), balance)

	wallet, err := s.repo.GetWallet(s.ctx, "user-1")
	s.NoError(err)
	s.Equal(int64(75), wallet.CoinBalance)
}

func (s *MemoryRepositoryTestSuite) TestCreditCoinsRejectsNegative() {
	// Execute
	_, err := s.repo.CreditCoins(s.ctx, "user-1", -5)

	// Assert
	s.ErrorIs(err, ErrNegativeCoins)

	wallet, _ := s.repo.GetWallet(s.ctx, "user-1")
	s.Equal(int64(0), wallet.CoinBalance, "Failed credit should not touch the wallet")
}

func (s *MemoryRepositoryTestSuite) TestCreditCoinsConcurrent() {
	// Setup
	const workers = 50
	const coinsEach = int64(10)

	var wg sync.WaitGroup
	wg.Add(workers)

	// Execute
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.repo.CreditCoins(s.ctx, "host-1", coinsEach)
			s.NoError(err)
		}()
	}
	wg.Wait()

	// Assert
	wallet, err := s.repo.GetWallet(s.ctx, "host-1")
	s.NoError(err)
	s.Equal(workers*coinsEach, wallet.CoinBalance, "No credit should be lost under concurrency")
}

func (s *MemoryRepositoryTestSuite) TestDonationsNewestFirst() {
	// Setup
	for _, id := range []string{"d1", "d2", "d3"} {
		err := s.repo.AddDonation(s.ctx, &entities.Donation{
			ID:         id,
			SessionID:  "session-1",
			ToUserID:   "host-1",
			GrossCoins: 100,
			NetCoins:   75,
		})
		s.NoError(err)
	}

	// Execute
	donations, err := s.repo.GetDonations(s.ctx, "host-1", 10)

	// Assert
	s.NoError(err)
	s.Len(donations, 3)
	s.Equal("d3", donations[0].ID, "Most recent donation should come first")
	s.Equal("d1", donations[2].ID)
}

func (s *MemoryRepositoryTestSuite) TestArchiveLifecycle() {
	// Setup
	for _, id := range []string{"d1", "d2"} {
		s.NoError(s.repo.AddDonation(s.ctx, &entities.Donation{ID: id, ToUserID: "host-1"}))
	}

	// Execute
	unarchived, err := s.repo.ListUnarchived(s.ctx, 10)
	s.NoError(err)
	s.Len(unarchived, 2)

	s.NoError(s.repo.MarkArchived(s.ctx, []string{"d1"}))

	// Assert
	unarchived, err = s.repo.ListUnarchived(s.ctx, 10)
	s.NoError(err)
	s.Len(unarchived, 1)
	s.Equal("d2", unarchived[0].ID)
}
