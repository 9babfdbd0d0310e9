package pets

import "context"

// OwnerOf expone el owner de una mascota.
// Se usa para evitar ciclos de imports entre módulos (diary, feeding -> pets).
func (s *Service) OwnerOf(ctx context.Context, petID int64) (int64, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return 0, err
	}
	return p.OwnerID, nil
}
