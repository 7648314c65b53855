// This file is part of Gopheradvance.
//
// Gopheradvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopheradvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopheradvance.  If not, see <https://www.gnu.org/licenses/>.

// Package cartridgeloader is used to specify the data that is to be attached
// to the emulated console.
//
// When the cartridge is ready to be loaded into the emulator, the Load()
// function should be used. The Load() function handles loading of data from
// different sources. Currently local files and data over HTTP are supported.
//
// The simplest instance of the Loader type:
//
//	cl := cartridgeloader.Loader{
//		Filename: "roms/game.gba",
//	}
//
// It is preferred however that the NewLoader() function is used.
//
// Once loaded, the cartridge header can be decoded with the Header()
// function. The BIOS image is loaded with the LoadBIOS() function.
package cartridgeloader
