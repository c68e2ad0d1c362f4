package values

// Restore constructors rehydrate value objects from the store. Stored data
// already passed validation when it was written, so these skip it.

func RestoreDepth(value float64, unit DepthUnit) Depth {
	return Depth{value: value, unit: unit}
}

func RestoreTemperature(value float64, unit TemperatureUnit) WaterTemperature {
	return WaterTemperature{value: value, unit: unit}
}

func RestoreVisibility(meters float64) Visibility {
	return Visibility{meters: meters}
}

func RestoreCoordinates(latitude, longitude float64) Coordinates {
	return Coordinates{latitude: latitude, longitude: longitude}
}

func RestoreUserProfile(firstName, lastName, bio string, avatarURL *string) UserProfile {
	return UserProfile{firstName: firstName, lastName: lastName, bio: bio, avatarURL: avatarURL}
}
