package staking

import "fmt"

// DeserializeConfig validates the Anchor discriminator and decodes a Config.
func DeserializeConfig(data []byte) (*Config, error) {
	if err := validateDiscriminator(data, DiscriminatorConfig); err != nil {
		return nil, err
	}
	var config Config
	if err := config.Deserialize(data); err != nil {
		return nil, fmt.Errorf("failed to deserialize config: %w", err)
	}
	return &config, nil
}

// DeserializeUserAccount validates the Anchor discriminator and decodes a UserAccount.
func DeserializeUserAccount(data []byte) (*UserAccount, error) {
	if err := validateDiscriminator(data, DiscriminatorUser); err != nil {
		return nil, err
	}
	var user UserAccount
	if err := user.Deserialize(data); err != nil {
		return nil, fmt.Errorf("failed to deserialize user account: %w", err)
	}
	return &user, nil
}

// DeserializeStakeAccount validates the Anchor discriminator and decodes a StakeAccount.
func DeserializeStakeAccount(data []byte) (*StakeAccount, error) {
	if err := validateDiscriminator(data, DiscriminatorStakeAccount); err != nil {
		return nil, err
	}
	var stake StakeAccount
	if err := stake.Deserialize(data); err != nil {
		return nil, fmt.Errorf("failed to deserialize stake account: %w", err)
	}
	return &stake, nil
}
