package config

import "github.com/Faultbox/scenekit/pkg/profile"

// ProfileConfig is a camera profile written with textual shortcuts:
//
//	profiles:
//	  - name: inspect
//	    mode: ARCBALL
//	    defaults: true
//	    camera_mouse:
//	      SHIFT+LEFT: TRANSLATE
//	    clicks:
//	      LEFT*2: ALIGN_CAMERA
//	    keys:
//	      CTRL+1: ADD_KEYFRAME_TO_PATH
type ProfileConfig = profile.Tables

// BuildProfiles parses every configured profile.
func (c *Config) BuildProfiles() ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(c.Profiles))
	for _, t := range c.Profiles {
		p, err := profile.FromTables(t)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
