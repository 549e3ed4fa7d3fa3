package catalog

import "context"

// Seed carga un catálogo de ejemplo. Pensado para un repo vacío.
func (s *Service) Seed(ctx context.Context) error {
	dogs, err := s.CreateCategory(ctx, "Dogs", "Puppies and adult dogs")
	if err != nil {
		return err
	}
	cats, err := s.CreateCategory(ctx, "Cats", "Kittens and adult cats")
	if err != nil {
		return err
	}
	birds, err := s.CreateCategory(ctx, "Birds", "Parrots, canaries and finches")
	if err != nil {
		return err
	}

	pets := []CreatePetInput{
		{CategoryID: dogs.ID, Name: "Rex", Description: "Golden retriever puppy", Price: 1500, Gender: GenderMale, StockQuantity: 3},
		{CategoryID: dogs.ID, Name: "Luna", Description: "Beagle, vaccinated", Price: 1200, Gender: GenderFemale, StockQuantity: 1},
		{CategoryID: cats.ID, Name: "Milo", Description: "Siamese kitten", Price: 900, Gender: GenderMale, StockQuantity: 2},
		{CategoryID: cats.ID, Name: "Nala", Description: "Persian cat", Price: 1100, Gender: GenderFemale, StockQuantity: 0},
		{CategoryID: birds.ID, Name: "Kiwi", Description: "Budgerigar, hand tamed", Price: 150, Gender: GenderMale, StockQuantity: 10},
	}
	for _, in := range pets {
		if _, err := s.CreatePet(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
